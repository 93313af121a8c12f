package core

// Color is the foreground color of a screen cell.
// The terminal platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the scene renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorWhite
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightWhite
	ColorGray
	ColorPink
	ColorBrown
	ColorNavy
	ColorSkin
)
