// internal/metrics/server.go
package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamzrod/modbus-servo/internal/status"
)

// SnapshotFunc returns the latest observation and whether one exists.
type SnapshotFunc func() (status.Snapshot, bool)

type snapshotView struct {
	Servo    string    `json:"servo"`
	At       time.Time `json:"at"`
	Status   []string  `json:"status"`
	Alarms   []string  `json:"alarms"`
	Position uint32    `json:"position"`
	Error    string    `json:"error,omitempty"`
}

// NewRouter serves /metrics from g and /status from latest.
func NewRouter(g prometheus.Gatherer, latest SnapshotFunc) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{})).Methods("GET")
	r.HandleFunc("/status", handleStatus(latest)).Methods("GET")
	return r
}

func handleStatus(latest SnapshotFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if latest == nil {
			http.Error(w, "status not available", http.StatusNotFound)
			return
		}
		s, ok := latest()
		if !ok {
			http.Error(w, "no observation yet", http.StatusServiceUnavailable)
			return
		}

		v := snapshotView{
			Servo:    s.Servo,
			At:       s.At,
			Status:   nonNil(s.Status),
			Alarms:   nonNil(s.Alarms),
			Position: s.Position,
		}
		if s.Err != nil {
			v.Error = s.Err.Error()
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}

func nonNil(f status.Flags) []string {
	if f == nil {
		return []string{}
	}
	return f
}

// Serve runs an HTTP server on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
