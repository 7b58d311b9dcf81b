package metrics

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Snapshot(t *testing.T) {
	r := NewRecorder()
	for i := 1; i <= 100; i++ {
		r.Record("GET /posts", time.Duration(i)*time.Millisecond)
	}
	r.Record("POST /login", 0)
	r.Record("POST /login", 2*time.Hour)

	stats := r.Snapshot()
	require.Len(t, stats, 2)

	assert.Equal(t, "GET /posts", stats[0].Route)
	assert.Equal(t, int64(100), stats[0].Count)
	assert.InDelta(t, 50000, stats[0].P50, 100)
	assert.InDelta(t, 95000, stats[0].P95, 100)
	assert.InDelta(t, 100000, stats[0].Max, 100)

	assert.Equal(t, "POST /login", stats[1].Route)
	assert.Equal(t, int64(2), stats[1].Count)
	assert.InDelta(t, maxLatencyMicros, stats[1].Max, float64(maxLatencyMicros)/100)
}

func TestRecorder_MiddlewareAndHandler(t *testing.T) {
	r := NewRecorder()
	app := fiber.New()
	app.Use(r.Middleware())
	app.Get("/posts/:postId/comments", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/stats", r.Handler())

	for _, path := range []string{"/posts/1/comments", "/posts/2/comments"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/stats", nil))
	require.NoError(t, err)

	var body struct {
		Success bool         `json:"success"`
		Routes  []RouteStats `json:"routes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.NotEmpty(t, body.Routes)
	assert.Equal(t, "GET /posts/:postId/comments", body.Routes[0].Route)
	assert.Equal(t, int64(2), body.Routes[0].Count)
}
