package toxicity

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestHTTPClassifier_Classify(t *testing.T) {
	req := require.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPost, r.Method)
		req.Equal("Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"label":"toxic","score":0.83},{"label":"non_toxic","score":0.17}]`))
	}))
	defer server.Close()

	c := NewHTTPClassifier(server.URL, "secret", time.Second, time.Millisecond, 2, logs.GetLoggerFromLevel(slog.LevelDebug))
	pred, err := c.Classify(context.Background(), "some text")
	req.NoError(err)
	req.Equal("toxic", pred.Label)
	req.InDelta(0.83, pred.Probability, 1e-9)
}

func TestHTTPClassifier_NonToxicDominant(t *testing.T) {
	req := require.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"label":"non_toxic","score":0.95},{"label":"toxic","score":0.05}]`))
	}))
	defer server.Close()

	c := NewHTTPClassifier(server.URL, "", time.Second, time.Millisecond, 2, logs.GetLoggerFromLevel(slog.LevelDebug))
	pred, err := c.Classify(context.Background(), "friendly text")
	req.NoError(err)
	req.Equal("non_toxic", pred.Label)
	// The probability is always p(toxic), not the dominant label's score.
	req.InDelta(0.05, pred.Probability, 1e-9)
}

func TestHTTPClassifier_RetriesOnThrottle(t *testing.T) {
	req := require.New(t)
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[{"label":"toxic","score":0.6}]`))
	}))
	defer server.Close()

	c := NewHTTPClassifier(server.URL, "", time.Second, time.Millisecond, 3, logs.GetLoggerFromLevel(slog.LevelDebug))
	pred, err := c.Classify(context.Background(), "text")
	req.NoError(err)
	req.EqualValues(2, calls.Load())
	req.InDelta(0.6, pred.Probability, 1e-9)
}

func TestHTTPClassifier_ClientErrorIsNotRetried(t *testing.T) {
	req := require.New(t)
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewHTTPClassifier(server.URL, "", time.Second, time.Millisecond, 3, logs.GetLoggerFromLevel(slog.LevelDebug))
	_, err := c.Classify(context.Background(), "text")
	req.Error(err)
	req.EqualValues(1, calls.Load())
}
