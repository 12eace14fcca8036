package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/material-portal/internal/entity"
)

// completionServer fakes the chat-completions endpoint, answering every
// request with the given model output.
func completionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error":"boom"}`))
			return
		}

		var response chatCompletionResponse
		response.Choices = make([]struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		}, 1)
		response.Choices[0].Message.Content = content
		json.NewEncoder(w).Encode(response)
	}))
}

func newTestClassifier(apiKey, baseURL string) *Classifier {
	return NewClassifier(NewClient(apiKey, baseURL), zerolog.Nop())
}

func TestClassifyParsesFencedAnswer(t *testing.T) {
	content := "```json\n" + `{"intent": "HOT", "category": "Flooring", "score": 85,
		"reasoning": "500 sqft laminate", "estimated_quote": "₹69,000",
		"email_subject": "Quotation for your Flooring Requirement",
		"email_body": "Dear Asha, here is the estimate."}` + "\n```"
	server := completionServer(t, http.StatusOK, content)
	defer server.Close()

	c := newTestClassifier("test-key", server.URL)
	got := c.Classify(context.Background(), "Asha", "Need 500 sqft laminate flooring")

	assert.Equal(t, entity.IntentHot, got.Intent)
	assert.Equal(t, 85, got.Score)
	assert.Equal(t, "₹69,000", got.EstimatedQuote)
}

func TestClassifyNon200IsFallback(t *testing.T) {
	server := completionServer(t, http.StatusInternalServerError, "")
	defer server.Close()

	c := newTestClassifier("test-key", server.URL)
	got := c.Classify(context.Background(), "Asha", "laminate")

	assert.Equal(t, FallbackAssessment(), got)
	assert.Equal(t, entity.IntentWarm, got.Intent)
	assert.Equal(t, 50, got.Score)
}

func TestClassifyUnreachableEndpointIsFallback(t *testing.T) {
	// Nothing listens here.
	c := newTestClassifier("test-key", "http://127.0.0.1:1")
	got := c.Classify(context.Background(), "Asha", "laminate")

	assert.Equal(t, FallbackAssessment(), got)
}

func TestClassifyMissingCredentialIsFallback(t *testing.T) {
	server := completionServer(t, http.StatusOK, "{}")
	defer server.Close()

	for _, key := range []string{"", "YOUR_API_KEY_HERE"} {
		c := newTestClassifier(key, server.URL)
		got := c.Classify(context.Background(), "Asha", "laminate")
		assert.Equal(t, FallbackAssessment(), got)
	}
}

func TestClassifyMalformedAnswerIsFallback(t *testing.T) {
	server := completionServer(t, http.StatusOK, "this is not json")
	defer server.Close()

	c := newTestClassifier("test-key", server.URL)
	got := c.Classify(context.Background(), "Asha", "laminate")

	assert.Equal(t, FallbackAssessment(), got)
}

func TestClassifyIncompleteAnswerIsFallback(t *testing.T) {
	// Valid JSON, but email_body is missing.
	content := `{"intent": "WARM", "category": "GENERAL", "score": 50,
		"reasoning": "r", "estimated_quote": "q", "email_subject": "s"}`
	server := completionServer(t, http.StatusOK, content)
	defer server.Close()

	c := newTestClassifier("test-key", server.URL)
	got := c.Classify(context.Background(), "Asha", "laminate")

	assert.Equal(t, FallbackAssessment(), got)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}

func TestFallbackAssessmentIsValid(t *testing.T) {
	fallback := FallbackAssessment()
	assert.NoError(t, fallback.Validate())
	assert.Equal(t, "Contact us", fallback.EstimatedQuote)
	assert.Equal(t, "We will contact you shortly.", fallback.EmailBody)
}
