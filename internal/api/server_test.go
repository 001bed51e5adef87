package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/eladgl/jobscout/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postIngestion(server *Server, body, cookie string) *httptest.ResponseRecorder {

	req := httptest.NewRequest("POST", "/api/ingestions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	recorder := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(recorder, req)
	return recorder
}

func Test_TriggerIngestion_PublishesEventAndAccepts(t *testing.T) {

	bus := EventBus.New()
	published := make(chan events.IngestRequested, 1)
	require.NoError(t, bus.Subscribe(events.IngestRequestedTopic, func(event events.IngestRequested) {
		published <- event
	}))

	server := NewServer(bus, 8080)

	recorder := postIngestion(server,
		`{"email": "dev@example.com", "keyword": "golang", "location": "Haifa"}`,
		"bcookie=abc; li_at=token123")

	assert.Equal(t, http.StatusAccepted, recorder.Code)

	select {
	case event := <-published:
		assert.Equal(t, "dev@example.com", event.Email)
		assert.Equal(t, "golang", event.Keyword)
		assert.Equal(t, "Haifa", event.Location)
		assert.Equal(t, "token123", event.SessionToken)
	case <-time.After(2 * time.Second):
		t.Fatal("no ingestion event was published")
	}
}

func Test_TriggerIngestion_WhenSessionCookieMissing_ShouldReturnUnauthorized(t *testing.T) {

	server := NewServer(EventBus.New(), 8080)

	recorder := postIngestion(server,
		`{"email": "dev@example.com", "keyword": "golang"}`,
		"bcookie=abc")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func Test_TriggerIngestion_WhenBodyInvalid_ShouldReturnBadRequest(t *testing.T) {

	server := NewServer(EventBus.New(), 8080)

	recorder := postIngestion(server, `{"email": "not-an-email"}`, "li_at=token123")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func Test_Healthz_ReturnsOk(t *testing.T) {

	server := NewServer(EventBus.New(), 8080)

	req := httptest.NewRequest("GET", "/healthz", nil)
	recorder := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
