// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package branch

import (
	"math"

	"github.com/cpmech/gonlin/config"
)

// clampFrac is the default fraction `c` LP_CLAMPED keeps the branch point
// away from either bound (§4.H table, "default 0.2").
const clampFrac = 0.2

// centralGuard is how close (as a fraction of U-L) LP_CENTRAL tolerates
// the LP value to a bound before falling back to the midpoint.
const centralGuard = 0.1

// Point selects the branch point for variable x with bounds [l,u] and LP
// value lpVal, according to strategy (§4.H). area is only consulted by
// MIN_AREA/BALANCED, supplying the two candidate areas/distances for a
// handful of trial points the caller (the convexifier-aware branching
// object) has already evaluated; when area is nil those two strategies
// degrade to the midpoint, same as an operator with no closed-form
// envelope to minimize against.
func Point(strategy config.BranchPointSelect, l, u, lpVal float64, area func(p float64) (leftArea, rightArea float64)) float64 {
	mid := (l + u) / 2
	switch strategy {
	case config.MidPoint:
		return mid

	case config.MinArea:
		if area == nil {
			return mid
		}
		return minimize(l, u, func(p float64) float64 {
			la, ra := area(p)
			return la + ra
		})

	case config.Balanced:
		if area == nil {
			return mid
		}
		return minimize(l, u, func(p float64) float64 {
			la, ra := area(p)
			return math.Abs(la - ra)
		})

	case config.LPClamped:
		lo := l + clampFrac*(u-l)
		hi := u - clampFrac*(u-l)
		return clamp(lpVal, lo, hi)

	case config.LPCentral:
		guard := centralGuard * (u - l)
		if lpVal-l < guard || u-lpVal < guard {
			return mid
		}
		return lpVal
	}
	return mid
}

// minimize does a coarse 33-point scan of [l,u] for the point minimizing
// f; MIN_AREA/BALANCED have no closed-form optimum in general (the
// "area" a branch point induces depends on the specific operator's
// envelope), so a bounded scan is the pragmatic, always-terminating
// substitute for a per-operator analytic solve.
func minimize(l, u float64, f func(float64) float64) float64 {
	const n = 33
	best, bestVal := l, f(l)
	for i := 1; i < n; i++ {
		p := l + (u-l)*float64(i)/float64(n-1)
		if v := f(p); v < bestVal {
			best, bestVal = p, v
		}
	}
	return best
}

func clamp(x, l, u float64) float64 {
	if x < l {
		return l
	}
	if x > u {
		return u
	}
	return x
}
