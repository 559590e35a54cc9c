// SPDX-License-Identifier: EPL-2.0

package pcm

// CubicInterpolate performs Catmull-Rom interpolation.
// x is the fractional position between y1 and y2 (0 <= x <= 1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing
	return int16(x * 32767.0)
}

// AppendInt16 converts src and appends it to dst.
func AppendInt16(dst []int16, src []float32) []int16 {
	if cap(dst)-len(dst) < len(src) {
		grown := make([]int16, len(dst), len(dst)+max(len(src), cap(dst)))
		copy(grown, dst)
		dst = grown
	}
	for _, x := range src {
		dst = append(dst, Float32ToInt16(x))
	}
	return dst
}
