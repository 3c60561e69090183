// internal/metrics/metrics_test.go
package metrics

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/modbus-servo/internal/status"
)

func TestObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveOperation("x_axis", "move", "ok", 2*time.Second)
	m.ObserveOperation("x_axis", "move", "ok", time.Second)
	m.ObserveOperation("x_axis", "home", "timeout", time.Minute)
	m.ObserveCycle("x_axis", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("x_axis", "move", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("x_axis", "home", "timeout")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cycles.WithLabelValues("x_axis")))
}

func TestRecordSnapshot(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordSnapshot(status.Snapshot{
		Servo:    "x_axis",
		At:       time.Unix(1700000000, 0),
		Status:   status.Flags{status.MotorEnabled, status.Moving},
		Alarms:   status.Flags{"Over Temp Error"},
		Position: 65546,
	})

	assert.Equal(t, 65546.0, testutil.ToFloat64(m.position.WithLabelValues("x_axis")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.flags.WithLabelValues("x_axis", "status", status.Moving)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.flags.WithLabelValues("x_axis", "status", status.Fault)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.flags.WithLabelValues("x_axis", "alarm", "Over Temp Error")))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.lastPoll.WithLabelValues("x_axis")))

	m.RecordSnapshot(status.Snapshot{Servo: "x_axis", Err: errors.New("timeout")})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pollErrors.WithLabelValues("x_axis")))
	assert.Equal(t, 65546.0, testutil.ToFloat64(m.position.WithLabelValues("x_axis")))
}

func TestRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveCycle("x_axis", 4)

	snap := status.Snapshot{Servo: "x_axis", Status: status.Flags{status.InPosition}, Position: 42}
	r := NewRouter(reg, func() (status.Snapshot, bool) { return snap, true })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `servo_move_cycles{servo="x_axis"} 4`))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var v snapshotView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "x_axis", v.Servo)
	assert.Equal(t, uint32(42), v.Position)
	assert.Equal(t, []string{status.InPosition}, v.Status)
	assert.Equal(t, []string{}, v.Alarms)
}

func TestRouter_NoSnapshotYet(t *testing.T) {
	r := NewRouter(prometheus.NewRegistry(), func() (status.Snapshot, bool) { return status.Snapshot{}, false })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/status", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
