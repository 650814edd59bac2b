package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GoArmGo/PlacesApp/internal/apperr"
	"github.com/GoArmGo/PlacesApp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&config.Config{
		GeocoderAPIKey:  "test-key",
		GeocoderBaseURL: serverURL,
	})
}

func TestResolve_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/json", r.URL.Path)
		assert.Equal(t, "20 W 34th St", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [{"geometry": {"location": {"lat": 40.7484, "lng": -73.9857}}}]
		}`))
	}))
	defer server.Close()

	loc, err := newTestClient(server.URL).Resolve(context.Background(), "20 W 34th St")
	require.NoError(t, err)
	assert.Equal(t, 40.7484, loc.Lat)
	assert.Equal(t, -73.9857, loc.Lng)
}

func TestResolve_ZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Resolve(context.Background(), "nowhere at all")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apperr.StatusOf(err))
	assert.Equal(t, "Could not find location for the specified address.", apperr.MessageOf(err))
}

func TestResolve_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "bad key", "results": []}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Resolve(context.Background(), "20 W 34th St")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apperr.StatusOf(err))
}

func TestResolve_ServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Resolve(context.Background(), "20 W 34th St")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindGeocoding))
}
