package calc

import "strconv"

// ActionKind tags the variant carried by an Action.
type ActionKind int

const (
	KindDigit ActionKind = iota + 1
	KindDecimal
	KindClear
	KindBackspace
	KindNegate
	KindBinary
	KindEquals
	KindConstant
	KindFunction
	KindMemory
	KindToggleAngle
	KindOpenParen
	KindCloseParen
)

// BinaryOp is an operator that waits for a second operand.
type BinaryOp int

const (
	OpNone BinaryOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	default:
		return ""
	}
}

// Function is a unary key applied to the displayed value at once.
type Function int

const (
	FuncSqrt Function = iota + 1
	FuncFactorial
	FuncSin
	FuncCos
	FuncTan
	FuncLog10
	FuncLn
	FuncSquare
	FuncCube
	FuncReciprocal
	FuncPercent
	FuncSciNotation
)

var functionLabels = map[Function]string{
	FuncSqrt:        "√",
	FuncFactorial:   "n!",
	FuncSin:         "sin",
	FuncCos:         "cos",
	FuncTan:         "tan",
	FuncLog10:       "log₁₀",
	FuncLn:          "ln",
	FuncSquare:      "x²",
	FuncCube:        "x³",
	FuncReciprocal:  "1/x",
	FuncPercent:     "%",
	FuncSciNotation: "EE",
}

func (f Function) String() string { return functionLabels[f] }

// Constant is a key that loads a mathematical constant.
type Constant int

const (
	ConstPi Constant = iota + 1
	ConstE
)

func (c Constant) String() string {
	switch c {
	case ConstPi:
		return "π"
	case ConstE:
		return "e"
	default:
		return ""
	}
}

// MemoryOp is one of the memory register keys.
type MemoryOp int

const (
	MemClear MemoryOp = iota + 1
	MemRecall
	MemAdd
	MemSub
	MemStore
)

func (m MemoryOp) String() string {
	switch m {
	case MemClear:
		return "MC"
	case MemRecall:
		return "MR"
	case MemAdd:
		return "M+"
	case MemSub:
		return "M-"
	case MemStore:
		return "MS"
	default:
		return ""
	}
}

// Action is a single key press. Only the field matching Kind is meaningful.
type Action struct {
	Kind  ActionKind
	Digit int
	Op    BinaryOp
	Func  Function
	Const Constant
	Mem   MemoryOp
}

// Act returns an action for a kind that carries no payload, such as
// KindEquals or KindClear.
func Act(kind ActionKind) Action { return Action{Kind: kind} }

func Digit(d int) Action { return Action{Kind: KindDigit, Digit: d} }

func Binary(op BinaryOp) Action { return Action{Kind: KindBinary, Op: op} }

func Unary(f Function) Action { return Action{Kind: KindFunction, Func: f} }

func Const(c Constant) Action { return Action{Kind: KindConstant, Const: c} }

func Memory(m MemoryOp) Action { return Action{Kind: KindMemory, Mem: m} }

// String returns the keypad label of the action.
func (a Action) String() string {
	switch a.Kind {
	case KindDigit:
		return strconv.Itoa(a.Digit)
	case KindDecimal:
		return "."
	case KindClear:
		return "C"
	case KindBackspace:
		return "⌫"
	case KindNegate:
		return "±"
	case KindBinary:
		return a.Op.String()
	case KindEquals:
		return "="
	case KindConstant:
		return a.Const.String()
	case KindFunction:
		return a.Func.String()
	case KindMemory:
		return a.Mem.String()
	case KindToggleAngle:
		return "DRG"
	case KindOpenParen:
		return "("
	case KindCloseParen:
		return ")"
	default:
		return "?"
	}
}
