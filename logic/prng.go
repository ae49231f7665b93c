package logic

// SeededRand is a small linear-congruential sequence. Every consumer that
// needs reproducible draws (perk offer shuffling, stage content) shares this
// one implementation instead of inlining the recurrence.
type SeededRand struct {
	seed int64
}

func NewSeededRand(seed int64) *SeededRand {
	return &SeededRand{seed: seed}
}

// Next advances the sequence and returns a draw in [0, 1].
// Recurrence: seed = (seed*1103515245 + 12345) & 0x7fffffff.
func (r *SeededRand) Next() float64 {
	r.seed = (r.seed*1103515245 + 12345) & 0x7fffffff
	return float64(r.seed) / float64(0x7fffffff)
}

// Intn returns a draw in [0, n). n must be > 0.
func (r *SeededRand) Intn(n int) int {
	v := int(r.Next() * float64(n))
	// Next can land exactly on 1.0 when the seed hits the modulus mask.
	if v >= n {
		v = n - 1
	}
	return v
}

// Shuffle performs a Fisher-Yates shuffle over n elements.
func (r *SeededRand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}
