package metrics

import (
	"net/http"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	lexiconPhrasesDesc = prometheus.NewDesc(
		"moodchat_lexicon_phrases",
		"Distinct phrases in each lexicon",
		[]string{"category"},
		nil,
	)
)

// LexiconCollector is a custom Prometheus collector that reports the lexicon
// sizes recorded at startup on each scrape.
type LexiconCollector struct {
	mu    sync.RWMutex
	sizes map[string]int
}

// Describe sends the metric descriptor to the channel.
func (c *LexiconCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- lexiconPhrasesDesc
}

// Collect emits one gauge per category.
func (c *LexiconCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	categories := make([]string, 0, len(c.sizes))
	for k := range c.sizes {
		categories = append(categories, k)
	}
	sort.Strings(categories)
	for _, category := range categories {
		ch <- prometheus.MustNewConstMetric(
			lexiconPhrasesDesc,
			prometheus.GaugeValue,
			float64(c.sizes[category]),
			category,
		)
	}
}

func (c *LexiconCollector) set(category string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sizes[category] = n
}

// Recorder counts resolution outcomes and holds the lexicon collector.
type Recorder struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
	lexicons    *LexiconCollector
}

// NewRecorder creates a recorder registered on its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moodchat_resolutions_total",
			Help: "Resolved messages by category and by the source of the label",
		}, []string{"category", "source"}),
		lexicons: &LexiconCollector{sizes: make(map[string]int)},
	}
	r.registry.MustRegister(
		r.resolutions,
		r.lexicons,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return r
}

// RecordResolution counts one resolved message.
func (r *Recorder) RecordResolution(category, source string) {
	r.resolutions.WithLabelValues(category, source).Inc()
}

// SetLexiconSize records the phrase count for a category.
func (r *Recorder) SetLexiconSize(category string, n int) {
	r.lexicons.set(category, n)
}

// Handler serves the recorder's registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init creates the process-wide recorder. Must be called once at startup,
// before the engine is trained; until then the package functions are no-ops.
func Init() *Recorder {
	recorderOnce.Do(func() {
		recorder = NewRecorder()
	})
	return recorder
}

// RecordResolution counts a resolution on the process-wide recorder.
func RecordResolution(category, source string) {
	if recorder == nil {
		return
	}
	recorder.RecordResolution(category, source)
}

// SetLexiconSize records a lexicon size on the process-wide recorder.
func SetLexiconSize(category string, n int) {
	if recorder == nil {
		return
	}
	recorder.SetLexiconSize(category, n)
}
