package verifier

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultLabel = "result"
	kindLabel   = "kind"
)

const (
	resultValid   = "valid"
	resultInvalid = "invalid"
	resultError   = "error"
)

// Metrics counts verification outcomes. A nil *Metrics records nothing.
type Metrics struct {
	verifications *prometheus.CounterVec
	parseErrors   *prometheus.CounterVec
	proofBytes    prometheus.Histogram
}

// NewMetrics creates the verifier metrics and registers them with registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigma_verifications_total",
				Help: "number of proofs verified, by result",
			},
			[]string{resultLabel},
		),
		parseErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigma_parse_errors_total",
				Help: "number of proofs rejected while parsing, by error kind",
			},
			[]string{kindLabel},
		),
		proofBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sigma_proof_bytes",
			Help:    "size of verified proofs in bytes",
			Buckets: prometheus.ExponentialBuckets(32, 2, 10),
		}),
	}

	err := registerer.Register(m.verifications)
	if err != nil {
		return nil, err
	}
	err = registerer.Register(m.parseErrors)
	if err != nil {
		return nil, err
	}
	err = registerer.Register(m.proofBytes)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(proofLen int, valid bool, err error) {
	if m == nil {
		return
	}
	m.proofBytes.Observe(float64(proofLen))
	switch {
	case err != nil:
		m.verifications.With(prometheus.Labels{resultLabel: resultError}).Inc()
		m.parseErrors.With(prometheus.Labels{kindLabel: ErrorKind(err)}).Inc()
	case valid:
		m.verifications.With(prometheus.Labels{resultLabel: resultValid}).Inc()
	default:
		m.verifications.With(prometheus.Labels{resultLabel: resultInvalid}).Inc()
	}
}
