package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/gofiber/fiber/v2"
)

const (
	minLatencyMicros = 1
	maxLatencyMicros = int64(time.Minute / time.Microsecond)
	sigFigs          = 3
)

// RouteStats summarises one route's latency in microseconds.
type RouteStats struct {
	Route string  `json:"route"`
	Count int64   `json:"count"`
	Mean  float64 `json:"mean_us"`
	P50   int64   `json:"p50_us"`
	P95   int64   `json:"p95_us"`
	P99   int64   `json:"p99_us"`
	Max   int64   `json:"max_us"`
}

// Recorder keeps one latency histogram per route.
type Recorder struct {
	mu     sync.Mutex
	routes map[string]*hdrhistogram.Histogram
}

func NewRecorder() *Recorder {
	return &Recorder{routes: make(map[string]*hdrhistogram.Histogram)}
}

// Record adds one observation. Durations beyond the histogram range are clamped.
func (r *Recorder) Record(route string, d time.Duration) {
	v := d.Microseconds()
	if v < minLatencyMicros {
		v = minLatencyMicros
	}
	if v > maxLatencyMicros {
		v = maxLatencyMicros
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.routes[route]
	if !ok {
		h = hdrhistogram.New(minLatencyMicros, maxLatencyMicros, sigFigs)
		r.routes[route] = h
	}
	_ = h.RecordValue(v)
}

// Snapshot returns stats for every route, sorted by route name.
func (r *Recorder) Snapshot() []RouteStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := make([]RouteStats, 0, len(r.routes))
	for route, h := range r.routes {
		stats = append(stats, RouteStats{
			Route: route,
			Count: h.TotalCount(),
			Mean:  h.Mean(),
			P50:   h.ValueAtQuantile(50),
			P95:   h.ValueAtQuantile(95),
			P99:   h.ValueAtQuantile(99),
			Max:   h.Max(),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Route < stats[j].Route })
	return stats
}

// Middleware times every request under "METHOD /route/pattern".
func (r *Recorder) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		r.Record(c.Method()+" "+c.Route().Path, time.Since(start))
		return err
	}
}

// Handler serves the current snapshot as JSON.
func (r *Recorder) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "routes": r.Snapshot()})
	}
}
