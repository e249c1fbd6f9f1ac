package csg

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// FuzzyFactory is a quantized deduplication index (§4.5): any two input
// tuples whose componentwise absolute difference is within tolerance
// resolve to the same stored object, provided the first insertion fixes
// the canonical instance.
type FuzzyFactory[T any] struct {
	dimension  int
	multiplier float64
	lookup     map[string]T
}

// NewFuzzyFactory returns a factory over dimension-sized float tuples,
// deduplicating within tolerance.
func NewFuzzyFactory[T any](dimension int, tolerance float64) *FuzzyFactory[T] {
	return &FuzzyFactory[T]{
		dimension:  dimension,
		multiplier: 1 / tolerance,
		lookup:     make(map[string]T),
	}
}

// LookupOrCreate returns the canonical object for values, constructing
// one via construct on first sight. All 2^d quantization corners around
// the first insertion are pre-registered so any later lookup within one
// quantum resolves to the same object.
func (f *FuzzyFactory[T]) LookupOrCreate(values []float64, construct func([]float64) T) T {
	key := roundKeyJoin(values, f.multiplier)
	if v, ok := f.lookup[key]; ok {
		return v
	}
	obj := construct(values)

	floors := make([]int64, len(values))
	for i, v := range values {
		floors[i] = int64(math.Floor(v * f.multiplier))
	}
	corners := 1 << uint(len(values))
	for mask := 0; mask < corners; mask++ {
		var sb strings.Builder
		for i := range values {
			if i > 0 {
				sb.WriteByte('/')
			}
			bit := int64((mask >> uint(i)) & 1)
			sb.WriteString(strconv.FormatInt(floors[i]+bit, 10))
		}
		f.lookup[sb.String()] = obj
	}
	return obj
}

// roundKey rounds v*multiplier to the nearest integer, generic over any
// float type so the same helper serves the 3-float vertex factory and
// the 4-float plane factory (per §9's tag-counter style preference for
// explicit, reusable helpers over ad hoc duplication).
func roundKey[F constraints.Float](v, multiplier F) int64 {
	return int64(math.Round(float64(v) * float64(multiplier)))
}

func roundKeyJoin(values []float64, multiplier float64) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(strconv.FormatInt(roundKey(v, multiplier), 10))
	}
	return sb.String()
}
