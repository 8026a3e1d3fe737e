package calc

// AngleUnit selects how trigonometric keys read their operand.
type AngleUnit int

const (
	Degree AngleUnit = iota
	Radian
)

func (u AngleUnit) String() string {
	if u == Radian {
		return "RAD"
	}
	return "DEG"
}

// Toggle returns the other unit.
func (u AngleUnit) Toggle() AngleUnit {
	if u == Radian {
		return Degree
	}
	return Radian
}

// LastAction is the most recently completed operation and the operand it
// was applied to.
type LastAction struct {
	Kind    ActionKind // KindBinary or KindFunction
	Op      BinaryOp
	Func    Function
	Operand float64
}

// State is the complete calculator state. It is a plain value: Apply never
// mutates its argument.
type State struct {
	// Input is the text of the value being typed or displayed: a numeric
	// literal, "0", or an error marker.
	Input string
	// Pending is the operator waiting for its second operand, OpNone if none.
	Pending BinaryOp
	// Previous is the left operand captured when Pending was set, or the
	// last resolved result.
	Previous    float64
	HasPrevious bool
	// AwaitingFresh makes the next digit start a new literal.
	AwaitingFresh bool
	HasDecimal    bool
	Memory        float64
	Last          LastAction
	HasLast       bool
	Angle         AngleUnit
	// Err is the kind of error behind an error marker in Input.
	Err error
}

// NewState returns the power-on state.
func NewState() State {
	return State{Input: "0"}
}

// Output is what a client renders after each action.
type Output struct {
	Display string
	// Memory is "M: <value>" while the register is non-zero, else empty.
	Memory string
}

// Output returns the display texts for the state.
func (s State) Output() Output {
	out := Output{Display: s.Input}
	if s.Memory != 0 {
		out.Memory = "M: " + Format(s.Memory)
	}
	return out
}
