package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialmedia/internal/queue"
)

type stubPublisher struct {
	err error
}

func (s stubPublisher) Publish(ctx context.Context, stream string, event queue.Event) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "1-0", nil
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/things/{id}", "204")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestInstrumentedPublisher(t *testing.T) {
	ok := AccountEventsTotal.WithLabelValues(queue.EventUserDeleted, "ok")
	failed := AccountEventsTotal.WithLabelValues(queue.EventUserDeleted, "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	event := queue.NewUserDeletedEvent(uuid.New())

	_, err := InstrumentPublisher(stubPublisher{}).Publish(context.Background(), queue.StreamAccounts, event)
	require.NoError(t, err)

	_, err = InstrumentPublisher(stubPublisher{err: errors.New("down")}).Publish(context.Background(), queue.StreamAccounts, event)
	require.Error(t, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	AccountEventsTotal.WithLabelValues(queue.EventUserRegistered, "ok").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "account_events_total"))
}
