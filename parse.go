package calc

import (
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Command = Assign | Expr
// Assign = Upper ':=' Expr
// Expr = Atom | Postfix | Call | Neg | Plus | Add | Sub | Mul | Div | Pow
// Atom = num | 'i' | 'j' | 'pi' | name | Upper | 'ans' | '(' Expr ')' | '{' Expr '}' | Vector | '|' Expr '|' | '||' Expr '||' | '$' Expr
// Vector = '[' Expr { (',' | ';') Expr } ']'
// Postfix = Atom '!' | Atom 'degs'
// Call = funcname | funcname Atom | funcname ArgList | funcname '^' Expr Call
// ArgList = '(' Expr { (',' | ';') Expr } ')' | '{' Expr { (',' | ';') Expr } '}'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr | Expr Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr | Expr '**' Expr

// Command is a parsed command that can be evaluated by a Calculator.
type Command struct {
	// n is the root node of the command.
	n *node
	// names is the list of symbol names used in the command.
	names []string
}

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
)

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// names is the set of symbol names that have been seen this parse.
	names map[string]bool
	// funcs is the set of function names that trigger special parsing for ids.
	funcs map[string]Func
	// resv is the set of names the lexer keeps whole.
	resv *reserved
	// bars is the stack of absolute value and norm bars that are open in the
	// current bracket level. A bar matching the innermost one closes it
	// instead of starting a new term.
	bars []string
	// nodefaults indicates that parse options have set all default functions.
	nodefaults bool
}

func (p *parsectx) checkdefaults() {
	if p.nodefaults {
		return
	}
	n := 0
	for k := range p.funcs {
		if _, ok := globalfuncs[k]; ok {
			n++
		}
	}
	if n == len(globalfuncs) {
		p.nodefaults = true
	}
}

// ParseFunc sets a function for parsing. To disable parsing a function, pass
// nil for fn. Function names must consist only of letters.
func ParseFunc(name string, fn Func) ParseOption {
	return &funcopt{name, fn}
}

func (o *funcopt) parseOption(p parsectx) parsectx {
	if p.funcs == nil {
		p.funcs = map[string]Func{}
	}
	p.funcs[o.name] = o.fn
	p.resv = nil
	return p
}

// ParseFuncs sets a group of functions for parsing. To disable parsing any
// function, set it to nil.
func ParseFuncs(fns map[string]Func) ParseOption {
	return funcsopt(fns)
}

func (o funcsopt) parseOption(p parsectx) parsectx {
	if p.funcs == nil {
		// Always make a copy.
		p.funcs = make(map[string]Func, len(o))
	}
	for k, v := range o {
		p.funcs[k] = v
	}
	p.resv = nil
	p.checkdefaults()
	return p
}

// globalReserved is the reserved name set of the default functions.
var globalReserved = sync.OnceValue(func() *reserved { return newReserved(globalfuncs) })

// ParsingPreset creates a parsing preset that may be more efficient when using
// the same non-default parsing options for many calls to Parse. A preset
// panics when it would change any option from the default, but it is safe to
// apply other options after a preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	p.fill()
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p.funcs != nil {
		panic("calc: preset applied to non-default parse config")
	}
	p.funcs = o.funcs
	p.resv = o.resv
	p.nodefaults = o.nodefaults
	return p
}

// fill adds unset default functions and computes the reserved names.
func (p *parsectx) fill() {
	if p.funcs == nil {
		p.funcs = globalfuncs
		p.resv = globalReserved()
	} else if !p.nodefaults {
		// Only set default functions that aren't already set.
		for k, v := range globalfuncs {
			if _, ok := p.funcs[k]; !ok {
				p.funcs[k] = v
			}
		}
		p.nodefaults = true
	}
	if p.resv == nil {
		p.resv = newReserved(p.funcs)
	}
}

// Parse parses a command so it can be evaluated by a Calculator. The given
// options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Command, error) {
	p := parsectx{}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	p.fill()
	p.names = make(map[string]bool)
	scan := lex(src, p.resv)
	n, err := parsecommand(scan, &p)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
		if n == nil {
			return nil, &EmptyExpressionError{Col: tok.pos}
		}
	default:
		return nil, itShouldNotHaveEndedThisWay(tok, -1)
	}
	cmd := Command{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		cmd.names = append(cmd.names, k)
	}
	sortstrs(cmd.names)
	return &cmd, nil
}

// ParseString is a shortcut to parse a command from a string.
func ParseString(src string, opts ...ParseOption) (*Command, error) {
	return Parse(strings.NewReader(src), opts...)
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// assignable reports whether name can be the target of an assignment.
func assignable(name string) bool {
	r, sz := utf8.DecodeRuneInString(name)
	return sz == len(name) && unicode.IsUpper(r)
}

// parsecommand parses an assignment or an expression. Like parseterm, it
// pushes the last token it scans.
func parsecommand(scan *lexer, p *parsectx) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenIdent && assignable(tok.text) {
		op, err := scan.next()
		if err != nil {
			return nil, err
		}
		if op.kind == tokenOp && op.text == ":=" {
			rhs, err := parseterm(scan, p, exprprec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, emptyAt(scan)
			}
			return &node{kind: nodeAssign, name: tok.text, left: rhs}, nil
		}
		scan.push(op)
	}
	scan.push(tok)
	return parseterm(scan, p, exprprec)
}

// emptyAt returns an error for an empty subexpression ending at the pushed
// token, leaving the token pushed.
func emptyAt(scan *lexer) error {
	end := scan.must()
	scan.push(end)
	return &EmptyExpressionError{Col: end.pos, End: end.text}
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenBar:
			if p.closes(scan, tok) {
				return n, nil
			}
			fallthrough
		case tokenNum, tokenIdent, tokenOpen:
			// (parsed) x -> (parsed) * (x)
			// (parsed) x^(expr) -> (parsed) * (x^(expr))
			// a^(parsed) x -> (a^(parsed)) * (x)
			// 2 (expr) -> (2) * (expr)
			scan.push(tok)
			prec := termprec
			if !prec.moreBinding(until) {
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodeMul, left: n, right: rhs}
		case tokenOp:
			if tok.text == ":=" {
				err := AssignError{Col: tok.pos}
				if n.kind == nodeObject || n.kind == nodeName {
					err.Target = n.name
				}
				return nil, &err
			}
			// Binary operator.
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, emptyAt(scan)
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// closes reports whether tok closes the innermost open bar. If it does, the
// closing bar is pushed. A || that closes a single | is split so that the
// second half starts a new term.
func (p *parsectx) closes(scan *lexer, tok lexToken) bool {
	if len(p.bars) == 0 {
		return false
	}
	switch top := p.bars[len(p.bars)-1]; {
	case top == tok.text:
		scan.push(tok)
	case top == "|" && tok.text == "||":
		scan.push(lexToken{text: "|", kind: tokenBar, pos: tok.pos + 1})
		scan.push(lexToken{text: "|", kind: tokenBar, pos: tok.pos})
	default:
		return false
	}
	return true
}

// shield hides the open bars while parsing a bracketed subexpression.
// Calling the returned function restores them.
func (p *parsectx) shield() func() {
	bars := p.bars
	p.bars = nil
	return func() { p.bars = bars }
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
// Postfix operators apply to the component it parses.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		n = &node{kind: nodeNum, name: tok.text}
	case tokenIdent:
		n, err = parseident(scan, p, tok)
		if err != nil {
			return nil, err
		}
	case tokenOp:
		if tok.text == "$" {
			// $ takes everything to the end of the enclosing subexpression.
			rhs, err := parseterm(scan, p, exprprec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, emptyAt(scan)
			}
			return rhs, nil
		}
		// unary operator
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, emptyAt(scan)
		}
		return &node{kind: prec.op, left: rhs}, nil
	case tokenOpen:
		if tok.text == "[" {
			n, err = parsevector(scan, p, tok)
			if err != nil {
				return nil, err
			}
			break
		}
		match := rightbracket(tok.text)
		restore := p.shield()
		rhs, err := parseterm(scan, p, exprprec)
		restore()
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose || end.text != closebrackets[match] {
			return nil, itShouldNotHaveEndedThisWay(end, match)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenBar:
		n, err = parsebars(scan, p, tok)
		if err != nil {
			return nil, err
		}
	case tokenClose:
		// Let the caller decide what to do.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("calc: unknown token: " + tok.String())
	}
	return postfix(scan, n)
}

// postfix applies any ! and degs operators following n.
func postfix(scan *lexer, n *node) (*node, error) {
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.kind == tokenOp && tok.text == "!":
			n = &node{kind: nodeFact, left: n}
		case tok.kind == tokenIdent && tok.text == "degs":
			n = &node{kind: nodeDegs, left: n}
		default:
			scan.push(tok)
			return n, nil
		}
	}
}

// parseident parses an identifier token: a constant, an object, a symbol, or
// a function call.
func parseident(scan *lexer, p *parsectx, tok lexToken) (*node, error) {
	switch name := tok.text; {
	case name == "i", name == "j":
		return &node{kind: nodeImag, name: name}, nil
	case name == "pi", name == "π":
		return &node{kind: nodeConst, name: "pi"}, nil
	case name == "ans", assignable(name):
		return &node{kind: nodeObject, name: name}, nil
	case name == "degs":
		return nil, &OperatorError{Col: tok.pos, Operator: name, Unary: true}
	}
	if fn := p.funcs[tok.text]; fn != nil {
		return parsecall(scan, p, fn, tok.text)
	}
	if utf8.RuneCountInString(tok.text) != 1 {
		return nil, &LookupError{Name: tok.text, Kind: "function"}
	}
	p.names[tok.text] = true
	return &node{kind: nodeName, name: tok.text}, nil
}

// parsebars parses an absolute value or norm opened by tok.
func parsebars(scan *lexer, p *parsectx, open lexToken) (*node, error) {
	p.bars = append(p.bars, open.text)
	rhs, err := parseterm(scan, p, exprprec)
	p.bars = p.bars[:len(p.bars)-1]
	if err != nil {
		return nil, err
	}
	end := scan.must()
	if end.kind != tokenBar || end.text != open.text {
		return nil, &BracketError{Col: end.pos, Left: open.text, Right: end.text}
	}
	if rhs == nil {
		return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
	}
	kind := nodeAbs
	if open.text == "||" {
		kind = nodeNorm
	}
	return &node{kind: kind, left: rhs}, nil
}

// parsevector parses the elements of a vector or matrix opened by tok.
func parsevector(scan *lexer, p *parsectx, open lexToken) (*node, error) {
	restore := p.shield()
	defer restore()
	elems, n, err := parsearglist(scan, p, open.text)
	if err != nil {
		return nil, err
	}
	end := scan.must()
	if end.text != "]" {
		return nil, &BracketError{Col: end.pos, Left: open.text, Right: end.text}
	}
	if n == 0 {
		return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
	}
	return &node{kind: nodeVector, right: elems}, nil
}

// parsecall parses the arguments to a call of a given Func. A bare argument
// is a single atom with its postfix operators, so "sin 2x" is sin(2) times x.
func parsecall(scan *lexer, p *parsectx, fn Func, name string) (*node, error) {
	call := &node{kind: nodeCall, name: name, fn: fn}
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenOp:
		// Check for e.g. ^2 in cos^2 x. Must be an exponentiation or higher.
		// Note that the fact that exponentiation is important here:
		// func^x^y(z) parses as [func(z)]^(x^y).
		if prec := binop(tok.text); prec.moreBinding(powprec) {
			up, err := parseterm(scan, p, powprec)
			if err != nil {
				return nil, err
			}
			if up == nil {
				return nil, emptyAt(scan)
			}
			call, err := parsecall(scan, p, fn, name)
			if err != nil {
				return nil, err
			}
			return &node{kind: nodePow, left: call, right: up}, nil
		}
		switch tok.text {
		case "+", "-", "$":
			// Signs and $ start an argument.
			return parsebare(scan, p, call, tok)
		}
		return parseniladic(scan, call, tok)
	case tokenBar:
		if p.closes(scan, tok) {
			if !fn.CanCall(0) {
				return nil, &CallError{Col: tok.pos, Func: name}
			}
			return call, nil
		}
		return parsebare(scan, p, call, tok)
	case tokenNum, tokenIdent:
		return parsebare(scan, p, call, tok)
	case tokenOpen:
		if tok.text == "[" {
			return parsebare(scan, p, call, tok)
		}
		match := rightbracket(tok.text)
		args, len, err := parsearglist(scan, p, tok.text)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			panic("calc: parsearglist ended on " + end.String() + " instead of close bracket")
		}
		if end.text != closebrackets[match] {
			return nil, &BracketError{Col: end.pos, Left: tok.text, Right: end.text}
		}
		if !fn.CanCall(len) {
			return nil, &CallError{Col: tok.pos, Func: name, Len: len}
		}
		call.right = args
		return call, nil
	case tokenClose, tokenSep, tokenEOF:
		return parseniladic(scan, call, tok)
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// parseniladic finishes a call with no arguments, pushing tok.
func parseniladic(scan *lexer, call *node, tok lexToken) (*node, error) {
	if !call.fn.CanCall(0) {
		return nil, &CallError{Col: tok.pos, Func: call.name}
	}
	scan.push(tok)
	return call, nil
}

// parsebare parses a bare single argument starting with tok. Functions that
// cannot take one argument are called with none, so pi-like constants
// multiply what follows.
func parsebare(scan *lexer, p *parsectx, call *node, tok lexToken) (*node, error) {
	switch {
	case call.fn.CanCall(1):
		// Single argument. exp x -> exp(x)
		scan.push(tok)
		rhs, err := parseterm(scan, p, argprec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, emptyAt(scan)
		}
		call.right = &node{kind: nodeArg, left: rhs}
		return call, nil
	case call.fn.CanCall(0):
		// No argument. g x -> (g) * (x)
		scan.push(tok)
		return call, nil
	default:
		// Any other number of arguments requires brackets.
		return nil, &CallError{Col: tok.pos, Func: call.name, Len: 1}
	}
}

// parsearglist parses a bracketed list of zero or more args.
func parsearglist(scan *lexer, p *parsectx, open string) (*node, int, error) {
	restore := p.shield()
	defer restore()
	var n node
	l := &n
	len := 0
	for {
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			// As a special case, reporting mismatched brackets is more helpful
			// than empty expression, if that's what we'd do here.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: open}
			}
			return nil, 0, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			// Caller checks that brackets match.
			scan.push(end)
			if rhs == nil {
				// No expression parsed.
				// func() is allowed, but func(a,) isn't.
				if len != 0 {
					return nil, 0, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, 0, nil
			}
			l.right = &node{kind: nodeArg, left: rhs}
			return n.right, len + 1, nil
		case tokenSep:
			len++
			l.right = &node{kind: nodeArg, left: rhs}
			l = l.right
		case tokenEOF:
			return nil, 0, &BracketError{Col: end.pos, Left: open, Right: ""}
		default:
			panic("calc: parseterm ended on non-end token " + end.String())
		}
	}
}

// rightbracket gets the closing bracket index for an opening bracket.
func rightbracket(left string) int {
	r, sz := utf8.DecodeRuneInString(left)
	k := strings.IndexRune(OpenBrackets, r)
	if k < 0 || sz != len(left) {
		panic("calc: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// leftbracket gets the opening bracket matching right. If right is no bracket,
// then the result is the empty string.
func leftbracket(right int) string {
	if right == -1 {
		return ""
	}
	return openbrackets[right]
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. match is the bracket rune index that
// the expression should have matched, or -1 if none.
func itShouldNotHaveEndedThisWay(tok lexToken, match int) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: ""}
	case tokenClose, tokenBar:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("calc: it really should not have ended this way: " + tok.String())
	}
}

// Vars returns the symbol names used in the command.
func (c *Command) Vars() []string {
	return append(([]string)(nil), c.names...)
}

// Target returns the object a command assigns to, or the empty string if it
// is not an assignment.
func (c *Command) Target() string {
	if c.n.kind != nodeAssign {
		return ""
	}
	return c.n.name
}

// String creates a string representation of the parsed command, with
// alternating round and square brackets grouping each term.
func (c *Command) String() string {
	var b strings.Builder
	c.n.fmt(&b, false)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Lower is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*", "×":
		return operator{5, false, nodeMul}
	case "/", "÷":
		return operator{5, false, nodeDiv}
	case "^", "**":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone. Signs bind less tightly
// than multiplication, so -2x is -(2x).
func unop(text string) operator {
	switch text {
	case "+":
		return operator{3, true, nodeNop}
	case "-":
		return operator{3, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// termprec is the default precedence for parsing terms. Its prec
	// should match that of multiplication.
	termprec = operator{5, true, nodeMul}
	// powprec is the precedence of exponentiation.
	powprec = binop("^")
	// argprec is the precedence of a bare function argument, which binds
	// tighter than any operator.
	argprec = operator{16, false, nodeNone}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)
