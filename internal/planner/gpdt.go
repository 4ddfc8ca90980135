package planner

import "github.com/cassiers-crypto/straps/internal/combin"

// GPdt is a ratios tensor r[k, s, t] in [0,1], with sum_s r[k, s, t] = 1 for
// every (k, t): a family of probe-distribution-table estimates or
// confidence bounds, one per physical-probe count k.
type GPdt struct {
	ratios *Tensor3[float64]
}

// AsRatios exposes the underlying [n_probe_cases, n_input_cases,
// n_output_cases] tensor.
func (g *GPdt) AsRatios() *Tensor3[float64] { return g.ratios }

// Instantiate collapses the n_probes axis at a fixed per-probe leakage
// probability p, weighting each k by the binomial PMF B(n_max, k) p^k
// (1-p)^(n_max-k): M[s, t] = sum_k B(n_max, k) p^k (1-p)^(n_max-k) r[k, s, t].
func (g *GPdt) Instantiate(p float64) *Tensor2[float64] {
	nProbeCases, nInputCases, nOutputCases := g.ratios.Dims()
	nMax := nProbeCases - 1

	coefs := make([]float64, nProbeCases)
	for k := 0; k < nProbeCases; k++ {
		coefs[k] = float64(combin.Binomial(nMax, k)) * pow(p, k) * pow(1-p, nMax-k)
	}

	out := NewTensor2[float64](nInputCases, nOutputCases)
	for s := 0; s < nInputCases; s++ {
		for t := 0; t < nOutputCases; t++ {
			var acc float64
			for k := 0; k < nProbeCases; k++ {
				acc += coefs[k] * g.ratios.At(k, s, t)
			}
			out.Set(s, t, acc)
		}
	}
	return out
}

func pow(base float64, exp int) float64 {
	if exp <= 0 {
		return 1
	}
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
