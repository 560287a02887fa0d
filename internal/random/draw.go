package random

// Chance runs one Bernoulli trial with probability p on e.
// p <= 0 never hits and p >= 1 always hits; neither consumes a sample.
// Otherwise the result is e.Float() < p.
func Chance(e Engine, p float64) (bool, error) {
	if err := validateProb(p); err != nil {
		return false, err
	}
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	return float64(e.Float()) < p, nil
}
