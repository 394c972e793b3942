package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.True(s.Empty())

	s.Push(12345678)
	assert.False(s.Empty())
	assert.Equal(1, s.Depth())
	assert.Equal(int64(12345678), s.Data[0])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(1)
	s.Push(-2)

	val, ok := s.Pop()
	assert.True(ok)
	assert.Equal(int64(-2), val)
	assert.Equal(1, s.Depth())

	val, ok = s.Pop()
	assert.True(ok)
	assert.Equal(int64(1), val)
	assert.True(s.Empty())
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	val, ok := s.Pop()
	assert.False(ok)
	assert.Equal(int64(0), val)
}

func TestStack_Pop2(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(5)
	s.Push(3)

	a, b, ok := s.Pop2()
	assert.True(ok)
	assert.Equal(int64(5), a)
	assert.Equal(int64(3), b)
	assert.True(s.Empty())
}

func TestStack_Pop2_Short(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(5)

	_, _, ok := s.Pop2()
	assert.False(ok)
	assert.Equal(1, s.Depth())
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(7)

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(int64(7), val)
	assert.Equal(1, s.Depth())

	s.Pop()
	_, ok = s.Peek()
	assert.False(ok)
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	s.Push(1)
	s.Push(2)
	assert.Equal(2, s.Depth())

	s.Reset()
	assert.True(s.Empty())

	s.Reset()
	assert.True(s.Empty())
}
