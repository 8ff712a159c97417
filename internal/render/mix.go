package render

// Lerp blends two colors by factor (0..1). Channels are linear.
func Lerp(a, b Color, f float64) Color {
	if f <= 0 {
		return a
	}
	if f >= 1 {
		return b
	}
	af := float32(1.0 - f)
	bf := float32(f)
	return Color{
		R: a.R*af + b.R*bf,
		G: a.G*af + b.G*bf,
		B: a.B*af + b.B*bf,
		A: a.A*af + b.A*bf,
	}
}

// Scale multiplies RGB by s, leaving alpha alone.
func Scale(c Color, s float64) Color {
	f := float32(s)
	return Color{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A}
}
