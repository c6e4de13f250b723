// Package classifier trains a TF-IDF bag-of-words model with a multinomial
// logistic regression on top, and predicts a label for free text.
package classifier

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"moodchat/internal/models"
)

var (
	ErrNoSamples       = errors.New("classifier: no training samples")
	ErrEmptyVocabulary = errors.New("classifier: training text has no tokens")
)

// Config controls training. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// C is the inverse L2 regularisation strength.
	C                 float64
	MaxIterations     int
	GradientThreshold float64
}

// DefaultConfig mirrors a stock logistic regression: C=1, 100 iterations.
func DefaultConfig() Config {
	return Config{
		C:                 1.0,
		MaxIterations:     100,
		GradientThreshold: 1e-4,
	}
}

// Model is a fitted vectoriser and linear classifier. It is immutable after
// Fit returns.
type Model struct {
	// vectorisation is not documented as safe for concurrent use
	mu         sync.Mutex
	vectoriser *nlp.CountVectoriser
	tfidf      *nlp.TfidfTransformer

	classes   []string
	weights   *mat.Dense // classes x features, nil for a single class
	intercept []float64
}

// Fit trains a model on rows. Labels are sorted so that the class order, and
// therefore tie-breaking in Predict, does not depend on row order.
func Fit(rows []models.LabeledPhrase, cfg Config) (*Model, error) {
	if len(rows) == 0 {
		return nil, ErrNoSamples
	}

	docs := make([]string, len(rows))
	for i, r := range rows {
		docs[i] = strings.ToLower(r.Input)
	}

	m := &Model{
		vectoriser: nlp.NewCountVectoriser(),
		tfidf:      nlp.NewTfidfTransformer(),
	}
	m.vectoriser.Fit(docs...)
	if len(m.vectoriser.Vocabulary) == 0 {
		return nil, ErrEmptyVocabulary
	}

	counts, err := m.vectoriser.Transform(docs...)
	if err != nil {
		return nil, fmt.Errorf("vectorise training text: %w", err)
	}
	m.tfidf.Fit(counts)
	weighted, err := m.tfidf.Transform(counts)
	if err != nil {
		return nil, fmt.Errorf("weight training text: %w", err)
	}

	m.classes = distinctSorted(rows)
	classIndex := make(map[string]int, len(m.classes))
	for i, c := range m.classes {
		classIndex[c] = i
	}

	if len(m.classes) == 1 {
		m.intercept = []float64{0}
		return m, nil
	}

	samples := columns(weighted)
	targets := make([]int, len(rows))
	for i, r := range rows {
		targets[i] = classIndex[r.Label]
	}

	features, _ := weighted.Dims()
	prob := &problem{
		samples:  samples,
		targets:  targets,
		classes:  len(m.classes),
		features: features,
		lambda:   1 / cfg.C,
	}

	theta, err := prob.minimize(cfg)
	if err != nil {
		return nil, err
	}

	stride := features + 1
	m.weights = mat.NewDense(len(m.classes), features, nil)
	m.intercept = make([]float64, len(m.classes))
	for k := range m.classes {
		m.weights.SetRow(k, theta[k*stride:k*stride+features])
		m.intercept[k] = theta[k*stride+features]
	}
	return m, nil
}

// Predict returns the most likely label for text. It always returns a label;
// text with no known tokens falls back to the intercepts alone.
func (m *Model) Predict(text string) string {
	if m.weights == nil {
		return m.classes[0]
	}

	x := m.vectorise(text)
	best, bestScore := 0, math.Inf(-1)
	for k := range m.classes {
		row := m.weights.RawRowView(k)
		score := m.intercept[k]
		for _, e := range x {
			score += row[e.index] * e.value
		}
		if score > bestScore {
			best, bestScore = k, score
		}
	}
	return m.classes[best]
}

// Classes returns the known labels in sorted order.
func (m *Model) Classes() []string {
	out := make([]string, len(m.classes))
	copy(out, m.classes)
	return out
}

// VocabularySize returns the number of distinct tokens seen during Fit.
func (m *Model) VocabularySize() int {
	return len(m.vectoriser.Vocabulary)
}

func (m *Model) vectorise(text string) []entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts, err := m.vectoriser.Transform(strings.ToLower(text))
	if err != nil {
		return nil
	}
	weighted, err := m.tfidf.Transform(counts)
	if err != nil {
		return nil
	}
	return columns(weighted)[0]
}

func distinctSorted(rows []models.LabeledPhrase) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		if _, ok := seen[r.Label]; ok {
			continue
		}
		seen[r.Label] = struct{}{}
		out = append(out, r.Label)
	}
	sort.Strings(out)
	return out
}

// entry is one non-zero feature of a document vector.
type entry struct {
	index int
	value float64
}

type nonZeroDoer interface {
	DoNonZero(fn func(i, j int, v float64))
}

// columns converts a features x documents matrix into one sparse,
// L2-normalised vector per document.
func columns(m mat.Matrix) [][]entry {
	rows, cols := m.Dims()
	out := make([][]entry, cols)

	if nz, ok := m.(nonZeroDoer); ok {
		nz.DoNonZero(func(i, j int, v float64) {
			if v != 0 {
				out[j] = append(out[j], entry{index: i, value: v})
			}
		})
	} else {
		for j := 0; j < cols; j++ {
			for i := 0; i < rows; i++ {
				if v := m.At(i, j); v != 0 {
					out[j] = append(out[j], entry{index: i, value: v})
				}
			}
		}
	}

	for j := range out {
		sort.Slice(out[j], func(a, b int) bool { return out[j][a].index < out[j][b].index })
		values := make([]float64, len(out[j]))
		for k, e := range out[j] {
			values[k] = e.value
		}
		if norm := floats.Norm(values, 2); norm > 0 {
			for k := range out[j] {
				out[j][k].value /= norm
			}
		}
	}
	return out
}

// problem is the L2-regularised multinomial log-loss over sparse samples.
// Parameters are laid out per class as [weights..., intercept].
type problem struct {
	samples  [][]entry
	targets  []int
	classes  int
	features int
	lambda   float64
}

func (p *problem) minimize(cfg Config) ([]float64, error) {
	dim := p.classes * (p.features + 1)
	x0 := make([]float64, dim)

	result, err := optimize.Minimize(optimize.Problem{
		Func: func(theta []float64) float64 {
			return p.eval(theta, nil)
		},
		Grad: func(grad, theta []float64) {
			p.eval(theta, grad)
		},
	}, x0, &optimize.Settings{
		MajorIterations:   cfg.MaxIterations,
		GradientThreshold: cfg.GradientThreshold,
	}, &optimize.LBFGS{})
	if result == nil || len(result.X) != dim {
		if err == nil {
			err = errors.New("optimizer returned no solution")
		}
		return nil, fmt.Errorf("train classifier: %w", err)
	}
	// An iteration limit or line-search stall still reports the best point.
	return result.X, nil
}

// eval returns the objective at theta and, when grad is non-nil, writes the
// gradient into it.
func (p *problem) eval(theta, grad []float64) float64 {
	stride := p.features + 1
	if grad != nil {
		for i := range grad {
			grad[i] = 0
		}
	}

	z := make([]float64, p.classes)
	var loss float64
	for s, x := range p.samples {
		for k := 0; k < p.classes; k++ {
			base := k * stride
			v := theta[base+p.features]
			for _, e := range x {
				v += theta[base+e.index] * e.value
			}
			z[k] = v
		}
		lse := floats.LogSumExp(z)
		y := p.targets[s]
		loss += lse - z[y]

		if grad == nil {
			continue
		}
		for k := 0; k < p.classes; k++ {
			d := math.Exp(z[k] - lse)
			if k == y {
				d--
			}
			base := k * stride
			for _, e := range x {
				grad[base+e.index] += d * e.value
			}
			grad[base+p.features] += d
		}
	}

	for k := 0; k < p.classes; k++ {
		base := k * stride
		for f := 0; f < p.features; f++ {
			w := theta[base+f]
			loss += 0.5 * p.lambda * w * w
			if grad != nil {
				grad[base+f] += p.lambda * w
			}
		}
	}
	return loss
}
