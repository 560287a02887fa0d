package random

import "math"

// uniform is an engine's primitive step: one sample in [0, 1).
type uniform func() float64

// remap maps one sample linearly onto [min, max]. Callers validate bounds.
func remap(next uniform, min, max float32) float32 {
	v := float32(next()*(float64(max)-float64(min)) + float64(min))
	// float64 rounding on extreme spans can step just outside
	if v > max {
		v = max
	}
	if v < min {
		v = min
	}
	return v
}

// remapInt maps one sample onto [min, max). min == max yields min.
func remapInt(next uniform, min, max int32) int32 {
	span := int64(max) - int64(min)
	if span <= 0 {
		next()
		return min
	}
	off := int64(math.Floor(next() * float64(span)))
	if off >= span {
		off = span - 1
	}
	return int32(int64(min) + off)
}

// fullRange returns one component spread over the int32 range.
func fullRange(next uniform) float32 {
	return remap(next, math.MinInt32, math.MaxInt32)
}

func vector2(next uniform) Vector2 {
	x := fullRange(next)
	y := fullRange(next)
	return Vector2{X: x, Y: y}
}

func vector3(next uniform) Vector3 {
	x := fullRange(next)
	y := fullRange(next)
	z := fullRange(next)
	return Vector3{X: x, Y: y, Z: z}
}

// insideCircle scales independent per-axis samples; points cover the
// bounding square, not the disc area.
func insideCircle(next uniform, radius float32) Vector2 {
	x := float32(next()) * radius
	y := float32(next()) * radius
	return Vector2{X: x, Y: y}
}

func insideSphere(next uniform, radius float32) Vector3 {
	x := float32(next()) * radius
	y := float32(next()) * radius
	z := float32(next()) * radius
	return Vector3{X: x, Y: y, Z: z}
}

func onSurface(next uniform, p Vector3) Quaternion {
	return Quaternion{X: p.X, Y: p.Y, Z: p.Z, W: float32(next())}
}

func rotation(next uniform) Quaternion {
	return onSurface(next, insideSphere(next, 1))
}
