package geom

import "math"

// Radian is an angle in radians.
type Radian float64

// Normalized wraps the angle to [-Pi, Pi].
func (r Radian) Normalized() Radian {
	a := float64(r)
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return Radian(a)
}

// Heading wraps the angle to [0, 2*Pi).
func (r Radian) Heading() Radian {
	const twoPi = 2 * math.Pi
	a := float64(r)
	for a < 0 {
		a += twoPi
	}
	for a >= twoPi {
		a -= twoPi
	}
	return Radian(a)
}
