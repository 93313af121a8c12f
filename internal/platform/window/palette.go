package window

import (
	"image/color"

	"github.com/vovakirdan/schoolrun/internal/core"
)

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

var (
	colorPage     = rgb(0xffffff)
	colorSky      = rgb(0xd7f0d7)
	colorWindowLt = rgb(0xffee88)
	colorTrunk    = rgb(0x7b5a2a)
	colorFoliage  = rgb(0x2f8b3b)
	colorGrass    = rgb(0x6aa84f)
	colorRoad     = rgb(0x7f7f7f)
	colorCarGlass = rgb(0xe0e6f7)
	colorTire     = rgb(0x222222)
	colorStep     = rgb(0xbdbdbd)
	colorStepEdge = rgb(0x777777)
	colorSchool   = rgb(0xffc0d0)
	colorInk      = rgb(0x333333)
	colorPane     = rgb(0xffffff)
	colorPaneEdge = rgb(0xcc8888)
	colorBus      = rgb(0x444444)
	colorStripe   = rgb(0xc7b98b)
	colorBusGlass = rgb(0x77aaff)
	colorDoor     = rgb(0x8b5c2a)
	colorKnob     = rgb(0xe0c080)
	colorUniform  = rgb(0x001f5b)
	colorMaroon   = rgb(0x800000)
	colorSkin     = rgb(0xffd8b1)
	colorHair     = rgb(0x6b3f2b)
	colorText     = rgb(0x111111)

	colorWall    = rgb(0xf3ead8)
	colorSlab    = rgb(0x8d6e63)
	colorCeiling = rgb(0xd7ccc8)
	colorHole    = rgb(0x1a1a1a)
	colorDanger  = rgb(0xd9534f)
	colorWet     = color.RGBA{R: 0x4a, G: 0x90, B: 0xe2, A: 0xa0}

	overlayLight = color.RGBA{R: 0xd9, G: 0xd9, B: 0xd9, A: 0xd9} // white at 85%, premultiplied
	overlayDark  = color.RGBA{A: 0x80}
)

var buildingColors = []color.RGBA{
	rgb(0xb3cde0),
	rgb(0xc7d7b9),
	rgb(0xd3b6c6),
	rgb(0xcfcfcf),
}

// carColor maps a traffic car's palette entry to its paint.
func carColor(c core.Color) color.RGBA {
	switch c {
	case core.ColorRed:
		return rgb(0xd9534f)
	case core.ColorBlue:
		return rgb(0x337ab7)
	case core.ColorYellow:
		return rgb(0xf0ad4e)
	case core.ColorGreen:
		return rgb(0x5cb85c)
	case core.ColorMagenta:
		return rgb(0x9b59b6)
	default:
		return rgb(0x888888)
	}
}
