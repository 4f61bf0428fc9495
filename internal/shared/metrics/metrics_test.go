package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected bucket counts %v", snap.counts)
	}
}

func TestRenderIncludesRequestCounters(t *testing.T) {
	IncResumesSaved()
	ObserveRequest("POST", "/api/v1/resumes/save", 200, 12*time.Millisecond)
	ObserveExportDuration(300 * time.Millisecond)

	out := Render()
	for _, want := range []string{
		"resumes_saved_total",
		`http_requests_total{method="POST",route="/api/v1/resumes/save",status="200"}`,
		"export_duration_ms_bucket{le=\"500\"}",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
