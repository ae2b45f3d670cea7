package core

// Vec2 represents a 2D vector, used throughout the sampling API for
// surface and light samples that only need two random dimensions.
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2.
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}
