package analyzer

import "github.com/haongo138/spacebot/geom"

// Bullet is one live bullet's estimated kinematic state. Bullets have no
// identity across ticks; the whole list is rebuilt on every ingested
// snapshot and discarded on the next.
type Bullet struct {
	Position geom.Point
	Velocity geom.Vec
	OwnerID  uint32
}

// newBullet converts an observed bullet state into a kinematic estimate,
// assuming the server moves bullets at a fixed speed along their angle.
func newBullet(state BulletState, speed float64) Bullet {
	return Bullet{
		Position: geom.Point{X: float64(state.X), Y: float64(state.Y)},
		Velocity: geom.WithAngle(geom.Radian(state.Angle), speed),
		OwnerID:  state.OwnerID,
	}
}
