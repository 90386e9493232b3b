package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_quest_total",
		Help: "Count of test quests",
	}, []string{"category"})
	counter.WithLabelValues("Soil").Add(2)

	srv := httptest.NewServer(NewHandler(counter))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(b), `test_quest_total{category="Soil"} 2`)
	require.Contains(t, string(b), "go_goroutines")
}
