package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	logg, err := logger.New("development")
	require.NoError(t, err)
	return logg
}

func newTestClient(t *testing.T, baseURL string) Client {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", baseURL)
	t.Setenv("OPENAI_MAX_RETRIES", "1")
	c, err := NewClient(testLogger(t))
	require.NoError(t, err)
	return c
}

func responseBody(text string) map[string]any {
	return map[string]any{
		"output": []map[string]any{{
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{{
				"type": "output_text",
				"text": text,
			}},
		}},
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewClient(testLogger(t))
	assert.Error(t, err)
}

func TestGenerateJSON(t *testing.T) {
	var gotAuth string
	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(responseBody(`{"answer": 7}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	schema := map[string]any{"type": "object"}
	obj, err := c.GenerateJSON(context.Background(), "sys", "usr", "answer_schema", schema)
	require.NoError(t, err)
	assert.Equal(t, float64(7), obj["answer"])
	assert.Equal(t, "Bearer test-key", gotAuth)

	format := gotReq["text"].(map[string]any)["format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, "answer_schema", format["name"])
	assert.Equal(t, true, format["strict"])
}

func TestGenerateJSONRequiresSchema(t *testing.T) {
	c := newTestClient(t, "http://localhost:0")

	_, err := c.GenerateJSON(context.Background(), "sys", "usr", "", map[string]any{})
	assert.Error(t, err)
	_, err = c.GenerateJSON(context.Background(), "sys", "usr", "name", nil)
	assert.Error(t, err)
}

func TestGenerateTextRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(responseBody("hello"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	text, err := c.GenerateText(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerateTextDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GenerateText(context.Background(), "sys", "usr")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
