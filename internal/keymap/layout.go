package keymap

// Layout is the keypad, row by row, as keypad labels.
var Layout = [][]string{
	{"sin", "cos", "tan", "π", "e", "n!"},
	{"log₁₀", "ln", "x²", "x³", "x^y", "√"},
	{"MC", "MR", "M+", "M-", "MS", "⌫"},
	{"(", ")", "%", "C", "±", "/"},
	{"7", "8", "9", "*", "1/x", "-"},
	{"4", "5", "6", "+", "EE", "="},
	{"1", "2", "3", ".", "0", "DRG"},
}
