package geometry

import "math"

// negInf and posInf mark the unbounded half-space sentinels an infinite
// plane inserts into its hit pool.
var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)
