package utils

import (
	"fmt"
	"regexp"

	"github.com/go-gl/mathgl/mgl32"
)

var colourPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{8}$`)

func ColourValidate(c string) bool {
	return colourPattern.MatchString(c)
}

// ColourParse turns an #rrggbbaa string into normalised RGBA components,
// ready for gl.ClearColor. Invalid input yields opaque black.
func ColourParse(s string) mgl32.Vec4 {
	if !ColourValidate(s) {
		return mgl32.Vec4{0, 0, 0, 1}
	}
	var r, g, b, a uint8
	_, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a)
	if err != nil {
		return mgl32.Vec4{0, 0, 0, 1}
	}
	return mgl32.Vec4{
		float32(r) / 255,
		float32(g) / 255,
		float32(b) / 255,
		float32(a) / 255,
	}
}
