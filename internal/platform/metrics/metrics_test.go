package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/gogoanime-api/internal/mocks"
	"github.com/phrazzld/gogoanime-api/internal/platform/metrics"
	"github.com/phrazzld/gogoanime-api/internal/provider"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedProvider_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	next := &mocks.MockProvider{}
	p := metrics.NewInstrumentedProvider(next, reg)
	ctx := context.Background()

	_, err := p.FetchSpotlight(ctx)
	require.NoError(t, err)

	next.DefaultError = fmt.Errorf("%w: ghost", provider.ErrNotFound)
	_, err = p.FetchAnimeInfo(ctx, "ghost")
	assert.ErrorIs(t, err, provider.ErrNotFound, "errors pass through unchanged")

	next.DefaultError = errors.New("upstream 503")
	_, _ = p.FetchCategory(ctx, provider.CategoryMovie, 1)
	_, _ = p.FetchCategory(ctx, provider.CategoryMovie, 2)

	expected := `
# HELP gogoanime_provider_requests_total Provider calls by operation and outcome.
# TYPE gogoanime_provider_requests_total counter
gogoanime_provider_requests_total{operation="category_movie",outcome="error"} 2
gogoanime_provider_requests_total{operation="info",outcome="not_found"} 1
gogoanime_provider_requests_total{operation="spotlight",outcome="success"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "gogoanime_provider_requests_total"))
	series, err := testutil.GatherAndCount(reg, "gogoanime_provider_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, series, "one latency series per operation")
	assert.Len(t, next.Calls(), 4)
}

func TestInstrumentedProvider_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewInstrumentedProvider(&mocks.MockProvider{}, reg)

	assert.Panics(t, func() { metrics.NewInstrumentedProvider(&mocks.MockProvider{}, reg) })
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := metrics.NewInstrumentedProvider(&mocks.MockProvider{}, reg)
	_, _ = p.FetchGenres(context.Background())

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `gogoanime_provider_requests_total{operation="genre_list",outcome="success"} 1`)
}
