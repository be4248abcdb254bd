package calc

import (
	"strconv"
	"strings"
)

// node is a node in the syntax tree of a command.
type node struct {
	kind nodeKind

	name string
	fn   Func

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum    // name is the literal
	nodeImag   // imaginary unit
	nodeConst  // name is a constant, pi
	nodeName   // name is a symbol
	nodeObject // name is an object: ans or an uppercase letter

	nodeCall   // name is Func to call, right is link to nodeArg unless niladic
	nodeArg    // eval left, right is link to next arg
	nodeVector // right is link to nodeArg elements

	nodeNeg    // evaluate left, then negate
	nodeAdd    // evaluate left, add right
	nodeSub    // evaluate left, sub right
	nodeMul    // evaluate left, mul right
	nodeDiv    // evaluate left, div by right
	nodePow    // evaluate left, exp by right
	nodeNop    // evaluate left
	nodeFact   // factorial of left
	nodeDegs   // left degrees in radians
	nodeAbs    // |left|
	nodeNorm   // ||left||
	nodeAssign // store left in object name
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeImag:
		return "Imag"
	case nodeConst:
		return "Const"
	case nodeName:
		return "Name"
	case nodeObject:
		return "Object"
	case nodeCall:
		return "Call"
	case nodeArg:
		return "Arg"
	case nodeVector:
		return "Vector"
	case nodeNeg:
		return "Neg"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodePow:
		return "Pow"
	case nodeNop:
		return "Nop"
	case nodeFact:
		return "Fact"
	case nodeDegs:
		return "Degs"
	case nodeAbs:
		return "Abs"
	case nodeNorm:
		return "Norm"
	case nodeAssign:
		return "Assign"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('#')
		if n.left != nil {
			n.left.fmt(b, square)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, square)
		}
		b.WriteByte('#')
	case nodeNum, nodeConst, nodeName, nodeObject:
		b.WriteString(n.name)
	case nodeImag:
		b.WriteByte('i')
	case nodeCall:
		b.WriteString(n.name)
		n.fmtargs(b, !square)
	case nodeArg:
		// Args usually only appear inside calls, which are handled by fmtargs.
		b.WriteByte(':')
		n.left.fmt(b, !square)
		if n.right != nil {
			n.right.fmt(b, !square)
		}
	case nodeVector:
		b.WriteString("vec")
		n.fmtargs(b, !square)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeAdd:
		n.left.fmt(b, !square)
		b.WriteString(" + ")
		n.right.fmt(b, !square)
	case nodeSub:
		n.left.fmt(b, !square)
		b.WriteString(" - ")
		n.right.fmt(b, !square)
	case nodeMul:
		n.left.fmt(b, !square)
		b.WriteString(" * ")
		n.right.fmt(b, !square)
	case nodeDiv:
		n.left.fmt(b, !square)
		b.WriteString(" / ")
		n.right.fmt(b, !square)
	case nodePow:
		n.left.fmt(b, !square)
		b.WriteString(" ^ ")
		n.right.fmt(b, !square)
	case nodeNop:
		b.WriteByte('+')
		n.left.fmt(b, !square)
	case nodeFact:
		n.left.fmt(b, !square)
		b.WriteByte('!')
	case nodeDegs:
		n.left.fmt(b, !square)
		b.WriteString(" degs")
	case nodeAbs:
		b.WriteByte('|')
		n.left.fmt(b, !square)
		b.WriteByte('|')
	case nodeNorm:
		b.WriteString("||")
		n.left.fmt(b, !square)
		b.WriteString("||")
	case nodeAssign:
		b.WriteString(n.name)
		b.WriteString(" := ")
		n.left.fmt(b, !square)
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) fmtargs(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	if n.right == nil {
		// Niladic call.
		return
	}
	n = n.right
	if n.kind != nodeArg {
		b.WriteString("***")
		n.fmt(b, !square)
		return
	}
	n.left.fmt(b, !square)
	for n.right != nil {
		n = n.right
		if n.kind != nodeArg {
			b.WriteString("***")
			n.fmt(b, !square)
			return
		}
		b.WriteString(", ")
		n.left.fmt(b, !square)
	}
}

// args collects the argument chain of a call or vector node.
func (n *node) args() []*node {
	var r []*node
	for l := n.right; l != nil; l = l.right {
		r = append(r, l.left)
	}
	return r
}
