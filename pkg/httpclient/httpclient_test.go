package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequestForwardsHeadersAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "Bearer t0k", r.Header.Get("Authorization"))
		assert.Equal(t, `{"isActive":true}`, string(body))
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewClient(time.Second, nil)
	resp, err := c.SendRequest(context.Background(), HttpRequest{
		URL:     srv.URL,
		Method:  http.MethodPatch,
		Body:    []byte(`{"isActive":true}`),
		Headers: map[string]string{"Authorization": "Bearer t0k"},
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.True(t, resp.OK())
	assert.Equal(t, `{"success":true}`, string(resp.Body))
}

func TestSendRequestReturnsServerErrorsAsResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	st := gobreaker.Settings{
		Name: "test",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	}
	c := NewClient(time.Second, gobreaker.NewCircuitBreaker[Response](st))

	for i := 0; i < 2; i++ {
		resp, err := c.SendRequest(context.Background(), HttpRequest{URL: srv.URL, Method: http.MethodGet})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, "<html>bad gateway</html>", string(resp.Body))
	}

	_, err := c.SendRequest(context.Background(), HttpRequest{URL: srv.URL, Method: http.MethodGet})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSendRequestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(time.Second, nil).SendRequest(context.Background(), HttpRequest{URL: url, Method: http.MethodGet})
	assert.Error(t, err)
}
