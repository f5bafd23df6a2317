package game

import "math"

// Vec3 is a point or velocity in world space. X/Z span the water plane,
// Y is altitude above the waterline.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dist returns the full 3D distance between two points.
func Dist(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// DistXZ returns distance on the water plane, ignoring altitude.
func DistXZ(a, b Vec3) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// HeadingTo returns the water-plane bearing in radians from (ox,oz) toward (tx,tz).
func HeadingTo(ox, oz, tx, tz float64) float64 {
	return math.Atan2(tz-oz, tx-ox)
}

// headingVec returns the forward unit vector for a heading, flat on the water.
func headingVec(heading float64) Vec3 {
	return Vec3{math.Cos(heading), 0, math.Sin(heading)}
}

// starboardVec returns the unit vector 90° clockwise (viewed from above)
// from the given heading, the starboard beam.
func starboardVec(heading float64) Vec3 {
	return Vec3{-math.Sin(heading), 0, math.Cos(heading)}
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// turnToward rotates heading toward target by at most maxStep radians and
// returns the new heading.
func turnToward(heading, target, maxStep float64) float64 {
	diff := normalizeAngle(target - heading)
	if math.Abs(diff) <= maxStep {
		return normalizeAngle(target)
	}
	if diff > 0 {
		return normalizeAngle(heading + maxStep)
	}
	return normalizeAngle(heading - maxStep)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
