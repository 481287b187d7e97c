package ranking

// Factor is one named contribution to a score.
type Factor struct {
	Name  string
	Value float64
}

// Breakdown is the per-factor decomposition of one item's score. The scorers
// build their totals through it, so an explained score is always the score
// that ranking actually used.
type Breakdown struct {
	Factors []Factor
}

func (b *Breakdown) add(name string, v float64) {
	b.Factors = append(b.Factors, Factor{Name: name, Value: v})
}

// Total sums all factor contributions.
func (b Breakdown) Total() float64 {
	var sum float64
	for _, f := range b.Factors {
		sum += f.Value
	}
	return sum
}
