package cpu

import (
	"bufio"
	"io"
	"log"
)

// Line is one significant source line record: either a label definition or
// an instruction with its raw operand tokens. The lexer only structures
// tokens; semantic validation happens during assembly.
type Line struct {
	LineNo   int      // 1-based source line number.
	Text     string   // Source text, comment stripped.
	Label    string   // Label name, for label records.
	Mnemonic string   // Mnemonic token, for instruction records.
	Args     []string // Operand tokens following the mnemonic.
}

// IsLabel reports whether the record defines a label.
func (ln Line) IsLabel() bool {
	return ln.Mnemonic == ""
}

// Lexer splits assembly source into line records.
type Lexer struct {
	Verbose bool // If set, verbosely logs each scanned line.
}

// Lex reads assembly source and returns its line records in order.
// Text after '#' is discarded and blank lines are skipped. A label is an
// identifier with a trailing colon ("name:"); the colon-prefixed form
// (":name") is accepted as equivalent. Labels may share a line with each
// other and with a following instruction, in which case each produces its
// own record tagged with the same line number.
func (lx *Lexer) Lex(input io.Reader) (lines []Line, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		lineno++
		text := stripComment(scanner.Text())

		if lx.Verbose {
			log.Printf("%v: %v", lineno, text)
		}

		words := splitTokens(text)
		if len(words) == 0 {
			continue
		}

		for len(words) > 0 {
			word := words[0]
			var name string
			switch {
			case word[len(word)-1] == ':':
				name = word[:len(word)-1]
			case word[0] == ':':
				name = word[1:]
			default:
				name = ""
			}
			if name == "" && word != ":" {
				break
			}
			lines = append(lines, Line{LineNo: lineno, Text: text, Label: name})
			words = words[1:]
		}

		if len(words) > 0 {
			lines = append(lines, Line{
				LineNo:   lineno,
				Text:     text,
				Mnemonic: words[0],
				Args:     words[1:],
			})
		}
	}

	err = scanner.Err()
	return
}

// stripComment removes everything from the first '#' onward, ignoring '#'
// inside character quotes.
func stripComment(text string) string {
	quoted := false
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			if quoted {
				i++
			}
		case '\'':
			quoted = !quoted
		case '#':
			if !quoted {
				return text[:i]
			}
		}
	}
	return text
}

// splitTokens splits a line on whitespace, keeping $( ... ) expressions and
// character quotes intact as single tokens.
func splitTokens(line string) (words []string) {
	i := 0
	for i < len(line) {
		c := line[i]
		if c == ' ' || c == '\t' {
			i++
			continue
		}
		start := i
		switch {
		case c == '$' && i+1 < len(line) && line[i+1] == '(':
			depth := 0
			i++
			for i < len(line) {
				if line[i] == '(' {
					depth++
				} else if line[i] == ')' {
					depth--
					if depth == 0 {
						i++
						break
					}
				}
				i++
			}
		case c == '\'':
			i++
			for i < len(line) {
				if line[i] == '\\' {
					i += 2
					continue
				}
				if line[i] == '\'' {
					i++
					break
				}
				i++
			}
		default:
			for i < len(line) && line[i] != ' ' && line[i] != '\t' {
				i++
			}
		}
		words = append(words, line[start:i])
	}
	return
}
