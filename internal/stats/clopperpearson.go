// Package stats implements Clopper-Pearson exact binomial confidence bounds,
// the statistical backbone turning sampled probe counts into certified
// leakage-probability intervals.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// BinomParamUB computes p' such that, for k ~ Binom(n, p), Pr[p' >= p] = 1 -
// proba: an upper confidence bound on p at confidence level 1-proba. This is
// the inverse complementary regularized incomplete beta function
// Ic_x^-1(k+1, n-k, proba), realized as a Beta-distribution quantile since
// the regularized incomplete beta IS the Beta CDF. Panics if the quantile is
// not finite.
func BinomParamUB(n, k uint64, proba float64) float64 {
	if k == n {
		return 1.0
	}
	beta := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
	q := beta.Quantile(1 - proba)
	if math.IsNaN(q) || math.IsInf(q, 0) {
		panic("stats: non-finite Beta quantile in BinomParamUB")
	}
	return q
}

// BinomParamLB computes p' such that Pr[p <= p'] = proba: a lower confidence
// bound on p at confidence level proba. Realized as I_x^-1(k, n-k+1, proba).
// Panics if the quantile is not finite.
func BinomParamLB(n, k uint64, proba float64) float64 {
	if k == 0 {
		return 0.0
	}
	beta := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
	q := beta.Quantile(proba)
	if math.IsNaN(q) || math.IsInf(q, 0) {
		panic("stats: non-finite Beta quantile in BinomParamLB")
	}
	return q
}
