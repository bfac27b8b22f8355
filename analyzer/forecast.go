package analyzer

import (
	"sort"
	"time"
)

// lockstepNormSq is the squared relative speed below which a bullet is
// treated as moving in lockstep with the player: no convergence, so no
// collision unless the two already overlap.
const lockstepNormSq = 1e-9

// Collision is one predicted bullet impact.
type Collision struct {
	Bullet   Bullet
	Time     time.Duration // offset from the latest snapshot
	Distance float64       // separation at Time
}

// BulletsToCollide predicts which of the current bullets come within the
// configured hit radius of the own player inside [0, horizon], sorted
// ascending by predicted time.
//
// The own player's velocity is the latest finite difference of its
// trajectory, treated as instantaneously constant. For each bullet the
// squared separation |Δp + Δv·t|² is a quadratic in t minimized at
// t* = −(Δp·Δv)/|Δv|²; t* is clamped to [0, horizon] and the bullet is
// reported iff the separation at the clamped time is within the hit
// radius. Predictions are recomputed fresh on every call; nothing is
// persisted across ticks.
func (a *Analyzer) BulletsToCollide(horizon time.Duration) ([]Collision, error) {
	if horizon < 0 {
		horizon = 0
	}
	own, err := a.OwnPlayer()
	if err != nil {
		return nil, err
	}
	pos, err := own.Trajectory.LastPosition()
	if err != nil {
		return nil, err
	}
	vel, err := own.Trajectory.LastVelocity()
	if err != nil {
		return nil, err
	}

	radius := a.cfg.Game.HitRadius
	var collisions []Collision
	for _, b := range a.bullets {
		dp := b.Position.Sub(pos)
		dv := b.Velocity.Sub(vel)

		var tMin time.Duration
		normSq := dv.NormSq()
		if normSq < lockstepNormSq {
			// Lockstep: separation never changes. tMin stays 0 and the
			// current distance decides.
		} else {
			closest := -dp.Dot(dv) / normSq
			tMin = clampDuration(time.Duration(closest*float64(time.Second)), 0, horizon)
		}

		dist := dp.Add(dv.Scale(tMin.Seconds())).Norm()
		if dist > radius {
			continue
		}
		if dp.Norm() <= radius {
			// Already overlapping.
			tMin = 0
		}
		collisions = append(collisions, Collision{Bullet: b, Time: tMin, Distance: dist})
	}

	sort.Slice(collisions, func(i, j int) bool {
		return collisions[i].Time < collisions[j].Time
	})
	return collisions, nil
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
