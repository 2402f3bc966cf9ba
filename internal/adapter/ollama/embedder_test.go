package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// echoEmbedServer returns one synthetic vector per input text whose first
// component encodes the text's numeric suffix, so order can be asserted.
func echoEmbedServer(t *testing.T, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/embed", r.URL.Path)

		var req embedRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		vectors := make([][]float32, len(req.Input))
		for i, text := range req.Input {
			vectors[i] = []float32{float32(len(text))}
		}
		_ = json.NewEncoder(w).Encode(embedResponse{Embeddings: vectors})
	}))
}

func TestEmbedder_EncodeOne(t *testing.T) {
	var calls atomic.Int64
	server := echoEmbedServer(t, &calls)
	defer server.Close()

	embedder := NewEmbedder(server.URL, "test-model", server.Client())

	vector, err := embedder.EncodeOne(context.Background(), "abcd")

	assert.NoError(t, err)
	assert.Equal(t, []float32{4}, vector)
	assert.Equal(t, int64(1), calls.Load())
}

func TestEmbedder_EncodeSmallBatchSingleCall(t *testing.T) {
	var calls atomic.Int64
	server := echoEmbedServer(t, &calls)
	defer server.Close()

	embedder := NewEmbedder(server.URL, "test-model", server.Client())

	vectors, err := embedder.Encode(context.Background(), []string{"a", "bb", "ccc"})

	assert.NoError(t, err)
	assert.Equal(t, [][]float32{{1}, {2}, {3}}, vectors)
	assert.Equal(t, int64(1), calls.Load())
}

func TestEmbedder_EncodeLargeBatchPreservesOrder(t *testing.T) {
	var calls atomic.Int64
	server := echoEmbedServer(t, &calls)
	defer server.Close()

	embedder := NewEmbedder(server.URL, "test-model", server.Client())

	texts := make([]string, 70)
	for i := range texts {
		texts[i] = repeatX(i + 1)
	}

	vectors, err := embedder.Encode(context.Background(), texts)

	assert.NoError(t, err)
	assert.Len(t, vectors, 70)
	for i, v := range vectors {
		assert.Equal(t, float32(i+1), v[0], "vector %d out of order", i)
	}
	// 70 texts at batch size 32 means 3 sub-batch calls.
	assert.Equal(t, int64(3), calls.Load())
}

// repeatX builds a string of the given length.
func repeatX(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}

func TestEmbedder_EncodeEmpty(t *testing.T) {
	embedder := NewEmbedder("http://localhost:1", "m", nil)

	vectors, err := embedder.Encode(context.Background(), nil)

	assert.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestEmbedder_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	embedder := NewEmbedder(server.URL, "m", server.Client())

	_, err := embedder.EncodeOne(context.Background(), "x")

	assert.Error(t, err)
}

func TestEmbedder_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(embedResponse{Embeddings: [][]float32{}})
	}))
	defer server.Close()

	embedder := NewEmbedder(server.URL, "m", server.Client())

	_, err := embedder.EncodeOne(context.Background(), "x")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1 embeddings")
}
