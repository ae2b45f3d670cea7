// Package math provides the low-discrepancy sequence provider consumed by
// pkg/lightdist. It used to hold a duplicate Vec3/Ray pair left over from
// when core.Vec3 replaced it as the renderer's vector type; nothing else in
// this module referenced this package, so it now carries the one piece of
// deterministic sampling infrastructure the light-distribution core needs
// but does not own: Halton radical-inverse sequences.
package math

// primes lists the first 32 prime numbers, used as Halton sequence bases.
// 32 dimensions is far more than any caller in this module needs (the
// photon tracer and spatial builder use at most 5), but keeping a fixed
// table avoids generating primes at runtime for a value that never changes.
var primes = [32]uint32{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
	59, 61, 67, 71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131,
}

// RadicalInverse returns the i-th value of the Halton sequence in the given
// dimension, i.e. the digits of i written in base primes[dim] and reflected
// around the decimal point. dim must be within [0, len(primes)).
func RadicalInverse(dim int, i uint64) float64 {
	base := uint64(primes[dim%len(primes)])
	invBase := 1.0 / float64(base)
	reversedDigits := uint64(0)
	invBaseN := 1.0
	for i > 0 {
		next := i / base
		digit := i - next*base
		reversedDigits = reversedDigits*base + digit
		invBaseN *= invBase
		i = next
	}
	return float64(reversedDigits) * invBaseN
}

// Halton2D returns a 2D low-discrepancy sample built from two consecutive
// Halton dimensions starting at dim.
func Halton2D(dim int, i uint64) (float64, float64) {
	return RadicalInverse(dim, i), RadicalInverse(dim+1, i)
}

// Halton3D returns a 3D low-discrepancy sample built from three consecutive
// Halton dimensions starting at dim.
func Halton3D(dim int, i uint64) (float64, float64, float64) {
	return RadicalInverse(dim, i), RadicalInverse(dim+1, i), RadicalInverse(dim+2, i)
}
