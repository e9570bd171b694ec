package releases

import (
	"context"
	"time"

	"shifremenlanding/internal/ghrel"

	"github.com/prometheus/client_golang/prometheus"
)

type instrumentedSource struct {
	Source
	fetches  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewInstrumentedSource counts Latest calls by result and times them.
// The collectors are registered on reg.
func NewInstrumentedSource(src Source, reg prometheus.Registerer) (Source, error) {
	s := &instrumentedSource{
		Source: src,
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shifremen",
			Name:      "release_fetch_total",
			Help:      "Latest-release lookups by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shifremen",
			Name:      "release_fetch_duration_seconds",
			Help:      "Latency of latest-release lookups.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	for _, c := range []prometheus.Collector{s.fetches, s.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *instrumentedSource) Latest(ctx context.Context, owner, repo string) (*ghrel.Release, error) {
	start := time.Now()
	rel, err := s.Source.Latest(ctx, owner, repo)
	s.duration.Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil {
		result = "error"
	}
	s.fetches.WithLabelValues(result).Inc()

	return rel, err
}
