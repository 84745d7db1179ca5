package observability

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/progress", "200", time.Millisecond)
	m.ObserveOperation("progress.toggle", "ok", time.Millisecond)
	m.IncToggle(true)
	m.SSEClientsInc()
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil WritePrometheus: %v", err)
	}
	rec := httptest.NewRecorder()
	m.WriteHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 503 {
		t.Fatalf("nil metrics should answer 503, got %d", rec.Code)
	}
	if Init(false, nil) != nil {
		t.Fatalf("disabled Init should return nil")
	}
}

func TestWritePrometheus(t *testing.T) {
	m := New()
	m.ObserveAPI("PATCH", "/api/progress/toggle", "200", 30*time.Millisecond)
	m.ObserveOperation("progress.toggle", "ok", 2*time.Millisecond)
	m.IncToggle(true)
	m.IncToggle(false)
	m.IncToggle(false)
	m.ApiInflightInc()

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`ism_api_requests_total{method="PATCH",route="/api/progress/toggle",status="200"} 1`,
		`ism_api_request_duration_seconds_bucket{method="PATCH",route="/api/progress/toggle",status="200",le="0.05"} 1`,
		`ism_api_request_duration_seconds_bucket{method="PATCH",route="/api/progress/toggle",status="200",le="0.025"} 0`,
		`ism_progress_toggles_total{result="reopened"} 2`,
		`ism_api_inflight_requests 1`,
		`# TYPE ism_service_operation_duration_seconds histogram`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"route", "status"}, []string{`/a"b\c`})
	if got != `{route="/a\"b\\c",status="unknown"}` {
		t.Fatalf("labelString: %s", got)
	}
	if withLe("", "+Inf") != `{le="+Inf"}` {
		t.Fatalf("withLe empty labels")
	}
}

func TestCollectDBStats(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormLogger.Discard})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(3)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m := New()
	m.collectDBStats(nil, db)
	if got := m.dbStats.Value("max_open_connections"); got != 3 {
		t.Fatalf("max_open_connections: want 3 got %g", got)
	}
}

func TestDBCollectorUsesScrapeInterval(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormLogger.Discard})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(2)
	t.Cleanup(func() { _ = sqlDB.Close() })

	var nilMetrics *Metrics
	if nilMetrics.WithScrapeInterval(time.Second) != nil {
		t.Fatalf("nil metrics should stay nil")
	}
	m := New().WithScrapeInterval(0)
	if m.scrapeInterval != 10*time.Second {
		t.Fatalf("non-positive interval should be ignored: %s", m.scrapeInterval)
	}
	m.WithScrapeInterval(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartDBCollector(ctx, nil, db)
	deadline := time.Now().Add(2 * time.Second)
	for m.dbStats.Value("max_open_connections") != 2 {
		if time.Now().After(deadline) {
			t.Fatalf("collector did not tick within the scrape interval")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
