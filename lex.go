package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/hashicorp/go-set/v3"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an integer or decimal literal.
	tokenNum
	// tokenIdent is a reserved name or a single letter.
	tokenIdent
	// tokenOp is an operator, including postfix ! and assignment.
	tokenOp
	// tokenOpen is an open bracket, e.g. (.
	tokenOpen
	// tokenClose is a close bracket, e.g. ).
	tokenClose
	// tokenSep is an argument or element separator, either , or ;.
	tokenSep
	// tokenBar is | or ||, which both open and close absolute values and
	// norms.
	tokenBar
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	case tokenBar:
		return "Bar"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which begin operators. ** and := are two-rune
// operators.
const Operators = "+-*/^×÷!$:"

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// The parser checks that a bracket in byte position k in OpenBrackets is
// matched with the bracket in byte position k in ClosedBrackets. Square
// brackets delimit vectors and matrices rather than grouping.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

func byteidcs(s string) []string {
	v := make([]string, len(s))
	for i, r := range s {
		v[i] = string(r)
	}
	return v
}

var (
	operstrs      = byteidcs(Operators)
	openbrackets  = byteidcs(OpenBrackets)
	closebrackets = byteidcs(CloseBrackets)
)

// reserved is the set of names that the lexer keeps whole when it splits a
// run of letters. Every other letter is its own identifier, so "xy" is x
// times y while "sinx" is sin of x.
type reserved struct {
	names   *set.Set[string]
	longest int
}

// fixedNames are reserved regardless of the function table.
var fixedNames = []string{"pi", "π", "ans", "degs", "i", "j"}

func newReserved(funcs map[string]Func) *reserved {
	r := reserved{names: set.From(fixedNames)}
	for name, fn := range funcs {
		if fn != nil {
			r.names.Insert(name)
		}
	}
	for _, name := range r.names.Slice() {
		r.longest = max(r.longest, len([]rune(name)))
	}
	return &r
}

// split breaks a run of letters into identifiers, taking the longest reserved
// name at each position.
func (r *reserved) split(run []rune, pos int) []lexToken {
	var toks []lexToken
	for len(run) > 0 {
		n := 1
		for k := min(len(run), r.longest); k > 1; k-- {
			if r.names.Contains(string(run[:k])) {
				n = k
				break
			}
		}
		toks = append(toks, lexToken{text: string(run[:n]), kind: tokenIdent, pos: pos})
		run = run[n:]
		pos += n
	}
	return toks
}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	resv *reserved
	rune int
	// q holds tokens that have been pushed back or split from a run of
	// letters, in the order next returns them.
	q   []lexToken
	eof bool
}

func lex(src io.RuneScanner, resv *reserved) *lexer {
	return &lexer{
		src:  src,
		resv: resv,
		rune: 1,
	}
}

// push unreads a token so that it is the next token returned from next.
// Pushing several tokens returns them in the reverse order.
func (l *lexer) push(tok lexToken) {
	l.q = append(l.q, lexToken{})
	copy(l.q[1:], l.q)
	l.q[0] = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	if len(l.q) == 0 {
		panic("calc: no pushed token")
	}
	tok := l.q[0]
	l.q = l.q[1:]
	return tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// peek reports whether the next rune is want, consuming it if so.
func (l *lexer) peek(want rune) (bool, error) {
	r, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	if r != want {
		l.unreadRune()
		return false, nil
	}
	return true, nil
}

// next scans the next token from the input. The first time EOF is
// encountered, the result is an EOF token with a nil error. Subsequent times,
// if the EOF token is not pushed, the result is an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if len(l.q) != 0 {
		return l.must(), nil
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			toks := l.resv.split([]rune(l.buf.String()), tok.pos)
			l.q = append(l.q, toks[1:]...)
			return toks[0], nil
		case r == ',':
			tok.text = ","
			tok.kind = tokenSep
			return tok, nil
		case r == ';':
			tok.text = ";"
			tok.kind = tokenSep
			return tok, nil
		case r == '|':
			tok.text = "|"
			tok.kind = tokenBar
			ok, err := l.peek('|')
			if err != nil {
				return tok, err
			}
			if ok {
				tok.text = "||"
			}
			return tok, nil
		case r == '*':
			tok.text = "*"
			tok.kind = tokenOp
			ok, err := l.peek('*')
			if err != nil {
				return tok, err
			}
			if ok {
				tok.text = "**"
			}
			return tok, nil
		case r == ':':
			l.buf.WriteRune(r)
			ok, err := l.peek('=')
			if err != nil {
				return tok, err
			}
			if !ok {
				return tok, l.error("operator")
			}
			tok.text = ":="
			tok.kind = tokenOp
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.text = operstrs[k]
				tok.kind = tokenOp
				return tok, nil
			}
			if k := strings.IndexRune(OpenBrackets, r); k >= 0 {
				tok.text = openbrackets[k]
				tok.kind = tokenOpen
				return tok, nil
			}
			if k := strings.IndexRune(CloseBrackets, r); k >= 0 {
				tok.text = closebrackets[k]
				tok.kind = tokenClose
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

// scanNum scans an unsigned integer or decimal literal. Any rune other than
// a digit or the decimal point ends the literal, so 2x is 2 followed by x.
func (l *lexer) scanNum() error {
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '.' {
			l.buf.WriteRune(r)
			if dot {
				return l.error("number")
			}
			dot = true
			continue
		}
		if r < '0' || '9' < r {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		dig = true
	}
	if !dig {
		return l.error("number")
	}
	return nil
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		if !unicode.IsLetter(r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "operator", or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
