// Package geom provides the 2-D point, vector, and angle arithmetic the
// estimator is built on. Vectors are per-second rates of change.
package geom

import (
	"errors"
	"math"
	"time"
)

// ErrDegenerateInterval is returned when a rate is requested over a
// zero-length time interval.
var ErrDegenerateInterval = errors.New("geom: degenerate interval")

// Point is a position in world coordinates.
type Point struct {
	X, Y float64
}

// Vec is a rate of change in world units per second.
type Vec struct {
	X, Y float64
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// AngleTo returns the full-circle bearing from p to q, in (-Pi, Pi].
func (p Point) AngleTo(q Point) Radian {
	return Radian(math.Atan2(q.Y-p.Y, q.X-p.X))
}

// VelocityTo returns the constant velocity that carries p to q over the
// given interval. Fails with ErrDegenerateInterval when the interval is
// zero or negative.
func (p Point) VelocityTo(q Point, interval time.Duration) (Vec, error) {
	secs := interval.Seconds()
	if secs <= 0 {
		return Vec{}, ErrDegenerateInterval
	}
	return Vec{
		X: (q.X - p.X) / secs,
		Y: (q.Y - p.Y) / secs,
	}, nil
}

// Project returns the position reached from p after moving at v for the
// given duration.
func (p Point) Project(v Vec, duration time.Duration) Point {
	secs := duration.Seconds()
	return Point{
		X: p.X + v.X*secs,
		Y: p.Y + v.Y*secs,
	}
}

// Sub returns the vector from q to p, interpreted as a displacement.
func (p Point) Sub(q Point) Vec {
	return Vec{X: p.X - q.X, Y: p.Y - q.Y}
}

// WithAngle returns the vector of the given speed pointing at angle.
func WithAngle(angle Radian, speed float64) Vec {
	return Vec{
		X: speed * math.Cos(float64(angle)),
		Y: speed * math.Sin(float64(angle)),
	}
}

// Abs returns the component-wise absolute value of v. Used to measure
// motion intensity regardless of direction.
func (v Vec) Abs() Vec {
	return Vec{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

// Add returns v + w.
func (v Vec) Add(w Vec) Vec {
	return Vec{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec {
	return Vec{X: v.X - w.X, Y: v.Y - w.Y}
}

// Scale returns v scaled by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Norm returns the magnitude of v.
func (v Vec) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// NormSq returns the squared magnitude of v.
func (v Vec) NormSq() float64 {
	return v.X*v.X + v.Y*v.Y
}
