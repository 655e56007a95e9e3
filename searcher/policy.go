package searcher

import "math"

// uct scores children of one parent: wins/n + c*sqrt(ln(N)/n).
type uct struct {
	numerator float64
}

func newUCT(c float64, N int) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	// c*sqrt(ln(N)/n) == sqrt(c^2*ln(N)/n) for c >= 0
	return &uct{numerator: c * c * math.Log(float64(N))}
}

func (u uct) evaluate(wins int64, n int) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	return float64(wins)/float64(n) + math.Sqrt(u.numerator/float64(n))
}
