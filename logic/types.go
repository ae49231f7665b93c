package logic

import "math"

// Vector2 represents a 2D position or velocity. Y grows downward (screen space).
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Circle is a position plus radius, used for wormholes and pusher obstacles.
type Circle struct {
	Pos    Vector2 `json:"pos"`
	Radius float64 `json:"radius"`
}

// Contains reports whether p lies inside the circle.
func (c Circle) Contains(p Vector2) bool {
	dx := p.X - c.Pos.X
	dy := p.Y - c.Pos.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Distance helper
func Distance(p1, p2 Vector2) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return math.Sqrt(dx*dx + dy*dy)
}
