// Package calc implements the scientific calculator engine.
//
// The engine is a keystroke state machine. [Apply] takes the current [State]
// and one [Action] (a digit, an operator, a function key...) and returns the
// next state together with the text to display. Binary operators are kept
// pending until their second operand is complete; unary functions act on the
// displayed value immediately. Pressing equals with nothing pending replays
// the last completed operation.
//
// Expressions are never parsed: operators chain strictly left to right and
// parentheses are appended to the input as plain characters.
//
// [Engine] wraps a State for interactive clients and adds logging and
// observers; it is not safe for concurrent use.
package calc
