package collada

import stdmath "math"

func nan() float64 { return stdmath.NaN() }
