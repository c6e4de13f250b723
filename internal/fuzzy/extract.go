package fuzzy

// Match is the best-scoring choice for a query.
type Match struct {
	Index  int
	Choice string
	Score  int
}

// Choices is a fixed candidate list with its processed forms cached.
type Choices struct {
	raw       []string
	processed []string
}

// NewChoices processes every candidate once. The order of list is kept and
// decides ties in Best.
func NewChoices(list []string) *Choices {
	c := &Choices{
		raw:       make([]string, len(list)),
		processed: make([]string, len(list)),
	}
	copy(c.raw, list)
	for i, s := range list {
		c.processed[i] = Process(s)
	}
	return c
}

// Len returns the number of candidates.
func (c *Choices) Len() int {
	return len(c.raw)
}

// Best returns the highest-scoring candidate for query. On equal scores the
// earlier candidate wins. It reports false only when there are no candidates.
func (c *Choices) Best(query string) (Match, bool) {
	if len(c.raw) == 0 {
		return Match{}, false
	}

	q := Process(query)
	best := Match{Index: -1, Score: -1}
	for i, p := range c.processed {
		score := weightedRatio(q, p)
		if score > best.Score {
			best = Match{Index: i, Choice: c.raw[i], Score: score}
			if score == 100 {
				break
			}
		}
	}
	return best, true
}
