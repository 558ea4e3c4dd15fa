package vmath

// QuadPoint evaluates a quadratic Bézier at t
func QuadPoint(p0, c, p1 Vec2, t float64) Vec2 {
	u := 1 - t
	return Vec2{
		X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
	}
}

// QuadDerivative returns dB/dt of a quadratic Bézier
func QuadDerivative(p0, c, p1 Vec2, t float64) Vec2 {
	u := 1 - t
	return Vec2{
		X: 2*u*(c.X-p0.X) + 2*t*(p1.X-c.X),
		Y: 2*u*(c.Y-p0.Y) + 2*t*(p1.Y-c.Y),
	}
}

// CubicPoint evaluates a cubic Bézier at t
func CubicPoint(p0, c0, c1, p1 Vec2, t float64) Vec2 {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Vec2{
		X: a*p0.X + b*c0.X + c*c1.X + d*p1.X,
		Y: a*p0.Y + b*c0.Y + c*c1.Y + d*p1.Y,
	}
}

// CubicDerivative returns dB/dt of a cubic Bézier
func CubicDerivative(p0, c0, c1, p1 Vec2, t float64) Vec2 {
	u := 1 - t
	a := 3 * u * u
	b := 6 * u * t
	c := 3 * t * t
	return Vec2{
		X: a*(c0.X-p0.X) + b*(c1.X-c0.X) + c*(p1.X-c1.X),
		Y: a*(c0.Y-p0.Y) + b*(c1.Y-c0.Y) + c*(p1.Y-c1.Y),
	}
}
