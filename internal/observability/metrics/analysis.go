package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "screener"

// AnalysisMetrics records screening outcomes. It satisfies ports.AnalysisRecorder.
type AnalysisMetrics struct {
	service string

	resumesAnalyzed  prometheus.Counter
	matchScore       prometheus.Histogram
	degradations     *prometheus.CounterVec
	jdKeywordsOutput prometheus.Histogram
}

func newAnalysisMetrics(service string, registry prometheus.Registerer) *AnalysisMetrics {
	labels := prometheus.Labels{"service": service}

	m := &AnalysisMetrics{
		service: service,
		resumesAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "analysis",
			Name:        "resumes_total",
			Help:        "Total résumés scored against a required skill list.",
			ConstLabels: labels,
		}),
		matchScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "analysis",
			Name:        "match_score",
			Help:        "Distribution of résumé match scores.",
			Buckets:     []float64{0, 10, 25, 40, 50, 60, 75, 90, 100},
			ConstLabels: labels,
		}),
		degradations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "analysis",
			Name:        "extraction_degraded_total",
			Help:        "Extraction steps that failed and fell back to a default.",
			ConstLabels: labels,
		}, []string{"stage"}),
		jdKeywordsOutput: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "jd",
			Name:        "keywords_returned",
			Help:        "Vocabulary keywords returned per job description.",
			Buckets:     []float64{0, 1, 2, 3, 5, 8, 13, 21},
			ConstLabels: labels,
		}),
	}
	registry.MustRegister(m.resumesAnalyzed, m.matchScore, m.degradations, m.jdKeywordsOutput)
	return m
}

func (m *AnalysisMetrics) ResumeAnalyzed(matchScore int) {
	m.resumesAnalyzed.Inc()
	m.matchScore.Observe(float64(matchScore))
}

func (m *AnalysisMetrics) ExtractionDegraded(stage string) {
	if stage == "" {
		stage = "unknown"
	}
	m.degradations.WithLabelValues(stage).Inc()
}

func (m *AnalysisMetrics) JDKeywordsReturned(count int) {
	m.jdKeywordsOutput.Observe(float64(count))
}
