package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	QuestCompletedTotal        = "quest_completed_total"
	ScoreEventTotal            = "score_event_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "code"}),
		QuestCompletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: QuestCompletedTotal,
			Help: "Count of completed quests",
		}, []string{"category"}),
		ScoreEventTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ScoreEventTotal,
			Help: "Count of quest completed events handled by the scorer",
		}, []string{"result"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "code"}),
	}
)

// PromCollectors lists every application collector, for registration.
func PromCollectors() []prometheus.Collector {
	result := []prometheus.Collector{}
	for _, counter := range PromCounters {
		result = append(result, counter)
	}

	for _, histogram := range PromHistograms {
		result = append(result, histogram)
	}

	return result
}
