package calc

import (
	"io"
	"maps"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/matrix"
	"github.com/zephyrtronium/calc/numeric"
)

// Calculator is a session for evaluating commands. It holds the objects
// assigned by commands, including ans, the values bound to variables, and the
// display context. It is not safe to use a Calculator concurrently.
type Calculator struct {
	objects map[string]Value
	vars    map[algebra.Symbol]algebra.Expr
	funcs   map[string]Func
	parse   []ParseOption
	ctx     numeric.Context
	log     *zap.Logger
}

// Option is an option used when creating a Calculator.
type Option interface {
	calcOption()
}

type (
	varopt struct {
		name string
		val  Value
	}
	varsopt  map[string]Value
	precopt  uint
	exactopt bool
	logopt   struct{ log *zap.Logger }
	funcsmap map[string]Func
)

func (varopt) calcOption()   {}
func (varsopt) calcOption()  {}
func (precopt) calcOption()  {}
func (exactopt) calcOption() {}
func (logopt) calcOption()   {}
func (funcsmap) calcOption() {}

// SetVar sets the value of a name in the calculator. Single uppercase letters
// and ans are objects, which may hold any value. Other names are variables,
// which substitute into expressions and must be scalars. Creating a
// Calculator panics if a variable is given a value that is not a scalar or a
// name is not made of letters.
func SetVar(name string, val Value) Option {
	return varopt{name, val}
}

// SetVars sets the values of any number of names in the calculator.
func SetVars(vars map[string]Value) Option {
	return varsopt(vars)
}

// Precision sets the number of significant digits the calculator displays.
// The working precision follows from it.
func Precision(digits uint) Option {
	return precopt(digits)
}

// Exact sets whether the calculator displays reals as fractions, multiples of
// pi, and multiples of small square roots when it recognizes them.
func Exact(exact bool) Option {
	return exactopt(exact)
}

// Logger sets the logger for the calculator. The default discards logs.
func Logger(log *zap.Logger) Option {
	return logopt{log}
}

// Funcs adds functions to the calculator or, with nil values, removes
// default functions.
func Funcs(fns map[string]Func) Option {
	return funcsmap(fns)
}

// New creates a calculator. Options are applied in order.
func New(opts ...Option) *Calculator {
	c := Calculator{
		objects: map[string]Value{"ans": algebra.Int(0)},
		vars:    make(map[algebra.Symbol]algebra.Expr),
		funcs:   globalfuncs,
		ctx:     numeric.Default,
		log:     zap.NewNop(),
	}
	var custom map[string]Func
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			c.bind(opt.name, opt.val)
		case varsopt:
			for k, v := range opt {
				c.bind(k, v)
			}
		case precopt:
			c.ctx = c.ctx.WithDigits(uint(opt))
		case exactopt:
			c.ctx = c.ctx.WithExact(bool(opt))
		case logopt:
			if opt.log != nil {
				c.log = opt.log
			}
		case funcsmap:
			if custom == nil {
				custom = make(map[string]Func, len(opt))
			}
			maps.Copy(custom, opt)
		default:
			panic("calc: unknown option type")
		}
	}
	if custom != nil {
		c.funcs = maps.Clone(globalfuncs)
		for k, v := range custom {
			if v == nil {
				delete(c.funcs, k)
				continue
			}
			c.funcs[k] = v
		}
		c.parse = []ParseOption{ParsingPreset(ParseFuncs(custom))}
	}
	return &c
}

// bind sets an object or variable during New.
func (c *Calculator) bind(name string, val Value) {
	if name == "ans" || assignable(name) {
		c.objects[name] = val
		return
	}
	if name == "" || strings.ContainsFunc(name, func(r rune) bool { return !unicode.IsLetter(r) }) {
		panic("calc: invalid variable name " + name)
	}
	e, ok := val.(algebra.Expr)
	if !ok {
		panic("calc: variable " + name + " must be a scalar")
	}
	c.vars[algebra.Sym(name)] = e
}

// ErrQuit is returned when a command asks to end the session.
var ErrQuit = errors.New("quit")

// Evaluate parses and runs a command. If the command succeeds, its value
// becomes ans, and an assignment stores the value in its target. A command
// that fails leaves the session unchanged.
func (c *Calculator) Evaluate(src string) (v Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("panic while parsing", zap.String("command", src), zap.Any("panic", r))
			v, err = nil, errors.Errorf("internal error parsing %q: %v", src, r)
		}
	}()
	cmd, err := ParseString(src, c.parse...)
	if err != nil {
		c.log.Debug("parse failed", zap.String("command", src), zap.Error(err))
		return nil, err
	}
	return c.Run(cmd)
}

// Run evaluates a parsed command, with the same effects as Evaluate. The
// command should be parsed with the calculator's functions. A panic during
// evaluation is recovered into an error and leaves the session unchanged.
func (c *Calculator) Run(cmd *Command) (v Value, err error) {
	saved := c.ctx
	defer func() {
		if r := recover(); r != nil {
			c.ctx = saved
			c.log.Error("panic during evaluation", zap.Stringer("command", cmd), zap.Any("panic", r))
			v, err = nil, errors.Errorf("internal error evaluating %v: %v", cmd, r)
		}
	}()
	v, err = cmd.n.eval(c)
	if err != nil {
		c.ctx = saved
		c.log.Debug("evaluation failed", zap.Stringer("command", cmd), zap.Error(err))
		return nil, err
	}
	if t := cmd.Target(); t != "" {
		c.objects[t] = v
	}
	switch v.(type) {
	case algebra.Expr, *matrix.Matrix, matrix.Vector, List:
		c.objects["ans"] = v
	}
	c.log.Debug("evaluated", zap.Stringer("command", cmd), zap.String("kind", kindOf(v)))
	return v, nil
}

// Format renders a value with the calculator's display context.
func (c *Calculator) Format(v Value) string {
	return v.Format(c.ctx)
}

// Context returns the calculator's current display context.
func (c *Calculator) Context() numeric.Context {
	return c.ctx
}

// Lookup returns the value of an object or variable. If there is no such
// name in the calculator, then the result is nil.
func (c *Calculator) Lookup(name string) Value {
	if v, ok := c.objects[name]; ok {
		return v
	}
	if v, ok := c.vars[algebra.Sym(name)]; ok {
		return v
	}
	return nil
}

// Eval is a shortcut to parse and evaluate a command in a new calculator.
func Eval(src io.RuneScanner, opts ...Option) (Value, error) {
	c := New(opts...)
	cmd, err := Parse(src, c.parse...)
	if err != nil {
		return nil, err
	}
	return c.Run(cmd)
}

// EvalString is a shortcut to parse and evaluate a string command in a new
// calculator.
func EvalString(src string, opts ...Option) (Value, error) {
	return Eval(strings.NewReader(src), opts...)
}

// literal converts a number literal.
func (c *Calculator) literal(s string) (Value, error) {
	if strings.Contains(s, ".") {
		r, ok := numeric.ParseReal(s, c.ctx.Prec())
		if !ok {
			return nil, &numeric.DomainError{Reason: "invalid number " + s}
		}
		return algebra.Num(r), nil
	}
	z, ok := numeric.ParseInteger(s)
	if !ok {
		return nil, &numeric.DomainError{Reason: "invalid number " + s}
	}
	return algebra.Num(z), nil
}

// binops maps binary node kinds to arithmetic operators.
var binops = map[nodeKind]algebra.Op{
	nodeAdd: algebra.OpAdd,
	nodeSub: algebra.OpSub,
	nodeMul: algebra.OpMul,
	nodeDiv: algebra.OpDiv,
	nodePow: algebra.OpPow,
}

// eval computes the node's value.
func (n *node) eval(c *Calculator) (Value, error) {
	switch n.kind {
	case nodeNum:
		return c.literal(n.name)
	case nodeImag:
		return algebra.Num(numeric.Imag(c.ctx.Prec())), nil
	case nodeConst:
		return algebra.Num(c.ctx.Pi()), nil
	case nodeName:
		s := algebra.Sym(n.name)
		if v, ok := c.vars[s]; ok {
			return v, nil
		}
		return s, nil
	case nodeObject:
		v, ok := c.objects[n.name]
		if !ok {
			return nil, &LookupError{Name: n.name, Kind: "object"}
		}
		return v, nil
	case nodeCall:
		var args []Value
		for l := n.right; l != nil; l = l.right {
			v, err := l.left.eval(c)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		r, err := n.fn.Call(c, args)
		if err != nil {
			if errors.Is(err, ErrQuit) {
				return nil, err
			}
			return nil, errors.WithMessage(err, "in "+n.name)
		}
		return r, nil
	case nodeArg:
		panic("calc: eval on nodeArg")
	case nodeVector:
		return n.vector(c)
	case nodeNeg:
		v, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		return negate(c.ctx, v)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		r, err := n.right.eval(c)
		if err != nil {
			return nil, err
		}
		return binary(c.ctx, binops[n.kind], l, r)
	case nodeNop, nodeAssign:
		return n.left.eval(c)
	case nodeFact:
		v, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		x, ok := v.(algebra.Number)
		if !ok {
			return nil, &numeric.DomainError{Func: "!", Reason: "factorial of " + article(kindOf(v))}
		}
		r, err := numeric.Factorial(numeric.Snap(x.Value()))
		if err != nil {
			return nil, err
		}
		return algebra.Num(r), nil
	case nodeDegs:
		v, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		k, err := c.ctx.Quo(c.ctx.Pi(), numeric.NewInteger(180))
		if err != nil {
			return nil, err
		}
		return binary(c.ctx, algebra.OpMul, v, algebra.Num(k))
	case nodeAbs:
		v, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		return builtinAbs(c, []Value{v})
	case nodeNorm:
		v, err := n.left.eval(c)
		if err != nil {
			return nil, err
		}
		return builtinNorm(c, []Value{v})
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// vector evaluates a bracketed list. Scalars make a vector, and vectors of
// equal length make the rows of a matrix.
func (n *node) vector(c *Calculator) (Value, error) {
	var elems []Value
	for l := n.right; l != nil; l = l.right {
		v, err := l.left.eval(c)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	switch elems[0].(type) {
	case algebra.Expr:
		v := make(matrix.Vector, len(elems))
		for i, e := range elems {
			x, ok := e.(algebra.Expr)
			if !ok {
				return nil, mixedVector(elems[0], e)
			}
			v[i] = x
		}
		return v, nil
	case matrix.Vector:
		rows := make([][]algebra.Expr, len(elems))
		for i, e := range elems {
			r, ok := e.(matrix.Vector)
			if !ok {
				return nil, mixedVector(elems[0], e)
			}
			rows[i] = r
		}
		return matrix.New(rows)
	}
	return nil, &numeric.DomainError{Reason: "a vector cannot contain " + article(kindOf(elems[0]))}
}

func mixedVector(first, bad Value) error {
	return &numeric.DomainError{Reason: "a vector cannot contain both " + article(kindOf(first)) + " and " + article(kindOf(bad))}
}
