package generate

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(baseUrl string) *generationService {
	return &generationService{
		baseUrl: baseUrl,
		apiKey:  "test-key",
		model:   "test-model",
		client:  &http.Client{Timeout: 2 * time.Second},
	}
}

func TestGenerateTextUsesFallbackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	gs := newTestService(server.URL)

	assert.Equal(t, "Pogi", gs.generateText("name", "describe a hero"))
	assert.Equal(t, "a foreign land", gs.generateText("country", "where from"))
	assert.Equal(t, "Failed to generate lore.", gs.generateText("lore", "backstory"))
}

func TestGenerateTextUsesFallbackOnUnreachableEndpoint(t *testing.T) {
	gs := newTestService("http://127.0.0.1:1")

	assert.Equal(t, "Pogi", gs.generateText("name", "describe a hero"))
}

func TestGenerateTextUsesFallbackOnEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	gs := newTestService(server.URL)

	assert.Equal(t, "Pogi", gs.generateText("name", "describe a hero"))
}

func TestGenerateTextPassesThroughResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Lapu-Lapu"}}]}`))
	}))
	defer server.Close()

	gs := newTestService(server.URL)

	assert.Equal(t, "Lapu-Lapu", gs.generateText("name", "describe a hero"))
}

func TestGenerateImageUsesPlaceholderOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gs := newTestService(server.URL)

	url := gs.generateImage("a portrait", "https://ipfs.io/ipfs/QmPlaceholder")
	assert.Equal(t, "https://ipfs.io/ipfs/QmPlaceholder", url)
}

func TestGenerateImagePassesThroughUrl(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/images/generations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"url":"https://cdn.example/portrait.png"}]}`))
	}))
	defer server.Close()

	gs := newTestService(server.URL)

	url := gs.generateImage("a portrait", "https://ipfs.io/ipfs/QmPlaceholder")
	assert.Equal(t, "https://cdn.example/portrait.png", url)
}
