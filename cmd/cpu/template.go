package main

// templateText is the starter program written by the new command.
const templateText = `# Sample Assembly Program
# Use 'cpu run <filename>' to execute

# Push values onto stack
push 10
push 20

# Add them
add

# Print result
print

# Exit program
halt
`

// docsText is the reference printed by the docs command.
const docsText = `CPU Assembly Language Documentation
===================================

This is a simple stack-based assembly language. Programs operate on a
stack of signed integers and have access to 1024 memory cells.

Lines are instructions of the form 'mnemonic [operand]'. Text after '#'
is a comment. 'name:' defines a label at the next instruction; jump
instructions may name a label or give a numeric address.

Instructions:
  push <n>       : Push value onto stack
  pop            : Remove top value from stack
  add            : Add top two values
  sub            : Subtract (a-b where b is top of stack)
  mul            : Multiply top two values
  div            : Divide (a/b where b is top of stack)
  mod            : Modulo (a%b where b is top of stack)
  dup            : Duplicate top value
  swap           : Swap top two values
  load <addr>    : Load value from memory address
  store <addr>   : Store value to memory address
  jump <addr>    : Jump to instruction address
  jumpif <addr>  : Jump if top of stack is non-zero
  jumpifz <addr> : Jump if top of stack is zero
  cmp            : Compare top two values (1 if a>b, 0 if a==b, -1 if a<b)
  print          : Print top value as number
  printchar      : Print top value as ASCII character
  read           : Read integer from input
  halt           : Stop execution

Directives:
  .equ NAME VALUE : Define a compile-time constant
  $( ... )        : Compile-time expression, e.g. push $(6 * 7)

Example: factorial of 5, printing 120.

    push 1          # accumulator
    push 5          # counter
    loop:
    dup             # counter reaches zero?
    jumpifz done
    dup             # acc c c -> acc*c c-1
    store 0
    mul
    load 0
    push 1
    sub
    jump loop
    done:
    pop             # drop the zero counter
    print
    halt

Example: print 'Hi' and a newline.

    push 72         # 'H'
    printchar
    push 105        # 'i'
    printchar
    push 10         # newline
    printchar
    halt
`
