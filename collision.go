package main

// WithinRadius checks if two points are closer than r (squared
// distances, no sqrt on the hot path)
func WithinRadius(a, b Vec2, r float64) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx+dy*dy < r*r
}
