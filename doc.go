// Package calc implements a symbolic calculator with arbitrary-precision
// arithmetic.
//
// The syntax of commands is intended to be similar to math you'd write in
// your notes. "2x y" is a multiplication of three terms, and so is
// "{2}[x](y)". Runs of letters split into the names they contain, so "xsinx"
// is x times sin(x). "-2^2^n" is the same as "-(2^(2^n))". Functions take
// bare arguments, so "sin 30 degs" is the sine of thirty degrees, and a
// function can be raised to a power before its argument, as in "cos^2 x".
//
// Lowercase letters are symbols. Expressions containing them stay symbolic:
// "expand((x+1)^2)" is x^2 + 2x + 1, and "differentiate(sin x)" is cos(x).
// Uppercase letters are objects, assigned with ":=" and holding any value,
// including vectors like [1, 2] and matrices like [[1, 2], [3, 4]]. The value
// of the last successful command is ans.
//
// A Calculator holds one session. Sessions keeps many of them by ID.
package calc
