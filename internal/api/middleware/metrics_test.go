package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := httpRequests.WithLabelValues("/api/posts/{id}", http.MethodGet, "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
