package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain_ReturnsFirstChoice(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Because photosynthesis."}},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gpt-4o-mini")
	text, err := client.Explain(context.Background(), ExplainInput{
		Question:      "What do plants eat?",
		UserAnswer:    "Pizza",
		CorrectAnswer: "Sunlight",
		Topic:         "Biology",
	})
	require.NoError(t, err)

	assert.Equal(t, "Because photosynthesis.", text)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, 800, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "What do plants eat?")
	assert.Contains(t, gotReq.Messages[1].Content, "Sunlight")
}

func TestExplain_EmptyChoicesFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gpt-4o-mini")
	text, err := client.Explain(context.Background(), ExplainInput{Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, fallbackText, text)
}

func TestExplain_SurfacesRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "insufficient quota"},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gpt-4o-mini")
	_, err := client.Explain(context.Background(), ExplainInput{Question: "q"})
	require.Error(t, err)
	assert.Equal(t, "insufficient quota", err.Error())
}

func TestExplain_StatusOnlyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "gpt-4o-mini")
	_, err := client.Explain(context.Background(), ExplainInput{Question: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestExplain_Unconfigured(t *testing.T) {
	client := NewClient("", "https://api.openai.com/v1", "gpt-4o-mini")
	assert.False(t, client.Configured())

	_, err := client.Explain(context.Background(), ExplainInput{Question: "q"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
