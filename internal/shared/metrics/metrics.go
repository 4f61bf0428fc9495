package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	resumesSavedTotal    atomic.Uint64
	resumesImportedTotal atomic.Uint64
	exportsTotal         atomic.Uint64
	exportsFailedTotal   atomic.Uint64
	exportCacheHitsTotal atomic.Uint64
	suggestionsTotal     atomic.Uint64

	exportDuration  = newHistogram([]float64{50, 100, 250, 500, 1000, 2500, 5000, 10000})
	requestDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000})

	requestsMu sync.Mutex
	requests   = map[string]uint64{}
)

// IncResumesSaved counts a successful resume save.
func IncResumesSaved() { resumesSavedTotal.Add(1) }

// IncResumesImported counts a document imported into a resume.
func IncResumesImported() { resumesImportedTotal.Add(1) }

// IncExports counts a rendered export.
func IncExports() { exportsTotal.Add(1) }

// IncExportsFailed counts a failed export.
func IncExportsFailed() { exportsFailedTotal.Add(1) }

// IncExportCacheHits counts an export served from cache.
func IncExportCacheHits() { exportCacheHitsTotal.Add(1) }

// IncSuggestions counts a suggestions request.
func IncSuggestions() { suggestionsTotal.Add(1) }

// ObserveExportDuration records an export render duration.
func ObserveExportDuration(d time.Duration) {
	exportDuration.Observe(durationMs(d))
}

// ObserveRequest records a completed HTTP request.
func ObserveRequest(method, route string, status int, d time.Duration) {
	requestDuration.Observe(durationMs(d))
	key := fmt.Sprintf(`method=%q,route=%q,status="%d"`, method, route, status)
	requestsMu.Lock()
	requests[key]++
	requestsMu.Unlock()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resumes_saved_total", "Total resumes saved", resumesSavedTotal.Load())
	writeCounter(&buf, "resumes_imported_total", "Total documents imported as resumes", resumesImportedTotal.Load())
	writeCounter(&buf, "exports_total", "Total exports rendered", exportsTotal.Load())
	writeCounter(&buf, "exports_failed_total", "Total exports failed", exportsFailedTotal.Load())
	writeCounter(&buf, "export_cache_hits_total", "Total exports served from cache", exportCacheHitsTotal.Load())
	writeCounter(&buf, "suggestions_total", "Total suggestion requests", suggestionsTotal.Load())
	writeHistogram(&buf, "export_duration_ms", "Export render duration in milliseconds", exportDuration.Snapshot())
	writeHistogram(&buf, "http_request_duration_ms", "HTTP request duration in milliseconds", requestDuration.Snapshot())
	writeRequests(&buf)
	return buf.String()
}

func writeRequests(buf *bytes.Buffer) {
	requestsMu.Lock()
	keys := make([]string, 0, len(requests))
	for k := range requests {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	counts := make([]uint64, len(keys))
	for i, k := range keys {
		counts[i] = requests[k]
	}
	requestsMu.Unlock()

	fmt.Fprintf(buf, "# HELP http_requests_total Total HTTP requests\n")
	fmt.Fprintf(buf, "# TYPE http_requests_total counter\n")
	for i, k := range keys {
		fmt.Fprintf(buf, "http_requests_total{%s} %d\n", k, counts[i])
	}
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe records value in the first bucket whose bound contains it.
func (h *histogram) Observe(value float64) {
	if value < 0 {
		value = 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
