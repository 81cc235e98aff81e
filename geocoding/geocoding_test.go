package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForward_ResolvesLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"features": [{
				"geometry": {"type": "Point", "coordinates": [-97.7431, 30.2672]},
				"place_name": "Austin, Texas, United States"
			}]
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.endpoint = server.URL

	features, err := client.Forward(context.Background(), "Austin, TX", 1)

	assert.NoError(t, err)
	assert.Len(t, features, 1)
	assert.Equal(t, "Point", features[0].Geometry.Type)
	assert.Equal(t, []float64{-97.7431, 30.2672}, features[0].Geometry.Coordinates)
	assert.Equal(t, "Austin, Texas, United States", features[0].PlaceName)
}

func TestForward_NoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.endpoint = server.URL

	features, err := client.Forward(context.Background(), "nowhere at all", 1)

	assert.NoError(t, err)
	assert.Empty(t, features)
}

func TestForward_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.endpoint = server.URL

	_, err := client.Forward(context.Background(), "Austin, TX", 1)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestForward_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key")
	client.endpoint = server.URL

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Forward(ctx, "Austin, TX", 1)

	assert.Error(t, err)
}
