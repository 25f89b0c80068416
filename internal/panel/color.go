package panel

import (
	"fmt"
	"math"
)

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type hues struct {
	healthy  Color
	distress Color
}

var systemHues = map[string]hues{
	"shields":      {healthy: Color{0, 240, 255}, distress: Color{255, 60, 60}},
	"networth":     {healthy: Color{80, 255, 160}, distress: Color{255, 170, 0}},
	"transactions": {healthy: Color{170, 120, 255}, distress: Color{255, 80, 140}},
	"cards":        {healthy: Color{255, 210, 90}, distress: Color{220, 40, 40}},
}

var fallbackHues = hues{healthy: Color{140, 200, 220}, distress: Color{255, 60, 60}}

// SystemColor interpolates a panel's healthy hue toward its distress hue by
// 1-health. Health is clamped to [0, 1].
func SystemColor(id string, health float64) Color {
	h, ok := systemHues[id]
	if !ok {
		h = fallbackHues
	}
	if math.IsNaN(health) {
		health = 1
	}
	t := 1 - min(max(health, 0), 1)
	return Color{
		R: lerp(h.healthy.R, h.distress.R, t),
		G: lerp(h.healthy.G, h.distress.G, t),
		B: lerp(h.healthy.B, h.distress.B, t),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
