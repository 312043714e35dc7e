package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	Init()
	Init()

	require.NotNil(t, pagesFetchedTotal)
	require.NotNil(t, extractionsTotal)
	require.NotNil(t, embeddingsTotal)
	require.NotNil(t, linksDiscoveredTotal)
	require.NotNil(t, pipelineRunsTotal)
}

func TestObserve(t *testing.T) {
	Init()

	before := testutil.ToFloat64(pagesFetchedTotal.WithLabelValues("ok"))
	ObservePageFetch("ok")
	assert.Equal(t, before+1, testutil.ToFloat64(pagesFetchedTotal.WithLabelValues("ok")))

	before = testutil.ToFloat64(extractionsTotal.WithLabelValues("error"))
	ObserveExtraction("error")
	assert.Equal(t, before+1, testutil.ToFloat64(extractionsTotal.WithLabelValues("error")))

	before = testutil.ToFloat64(embeddingsTotal.WithLabelValues("event", "skipped"))
	ObserveEmbedding("event", "skipped")
	assert.Equal(t, before+1, testutil.ToFloat64(embeddingsTotal.WithLabelValues("event", "skipped")))

	before = testutil.ToFloat64(linksDiscoveredTotal)
	ObserveLinksDiscovered(3)
	ObserveLinksDiscovered(0)
	assert.Equal(t, before+3, testutil.ToFloat64(linksDiscoveredTotal))

	before = testutil.ToFloat64(pipelineRunsTotal.WithLabelValues("embed-entities", "completed"))
	ObservePipelineRun("embed-entities", "completed")
	assert.Equal(t, before+1, testutil.ToFloat64(pipelineRunsTotal.WithLabelValues("embed-entities", "completed")))
}

func TestHandler(t *testing.T) {
	ObservePageFetch("error")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "gallery_indexer_pages_fetched_total"))
}
