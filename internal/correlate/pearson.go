package correlate

import "math"

// pearson computes the Pearson correlation coefficient between two
// equal-length series. It returns ok=false when either series has zero
// variance, where the coefficient is undefined.
func pearson(xs, ys []float64) (r float64, ok bool) {
	n := float64(len(xs))
	if len(xs) != len(ys) || len(xs) == 0 {
		return 0, false
	}

	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, false
	}

	return cov / math.Sqrt(varX*varY), true
}

// round2 rounds to two decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
