package judge0

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/algoforge.net/internal/config"
	"gitlab.com/algoforge.net/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func newTestClient(serverURL string) *Client {
	return NewClient(&config.JudgeConfig{
		BaseURL:        serverURL,
		APIKey:         "test-key",
		RequestTimeout: 5 * time.Second,
	}, nopLogger{})
}

func TestSubmitBatchMarshalsRequestsAndReturnsTokensInOrder(t *testing.T) {
	var captured batchSubmitRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/batch-submit", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Auth-Token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		tokens := make([]tokenResponse, 0, len(captured.Submissions))
		for i := range captured.Submissions {
			tokens = append(tokens, tokenResponse{Token: string(rune('a' + i))})
		}
		json.NewEncoder(w).Encode(tokens)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	tokens, err := client.SubmitBatch(context.Background(), []domain.ExecutionRequest{
		{SourceCode: "code", LanguageID: 71, Stdin: "1", ExpectedOutput: "2", CPUTimeLimit: 2, MemoryLimitKB: 128000},
		{SourceCode: "code", LanguageID: 71, Stdin: "3", ExpectedOutput: "4", CPUTimeLimit: 2, MemoryLimitKB: 128000},
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.ExecutionToken{"a", "b"}, tokens)
	require.Len(t, captured.Submissions, 2)
	assert.Equal(t, "1", captured.Submissions[0].Stdin)
	assert.Equal(t, "3", captured.Submissions[1].Stdin)
	assert.Equal(t, 71, captured.Submissions[0].LanguageID)
	assert.Equal(t, 2.0, captured.Submissions[0].CPUTimeLimit)
	assert.Equal(t, 128000, captured.Submissions[0].MemoryLimit)
}

func TestGetBatchResultsFlattensNullableFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/batch-results", r.URL.Path)
		assert.Equal(t, "tok-1,tok-2", r.URL.Query().Get("tokens"))

		w.Write([]byte(`{"submissions":[
			{"token":"tok-1","status":{"id":3,"description":"Accepted"},"stdout":"5\n","stderr":null,"compile_output":null,"time":"0.012","memory":3040},
			{"token":"tok-2","status":{"id":2,"description":"Processing"},"stdout":null,"stderr":null,"compile_output":null,"time":null,"memory":null}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	outcomes, err := client.GetBatchResults(context.Background(), []domain.ExecutionToken{"tok-1", "tok-2"})

	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, domain.JudgeStatusAccepted, outcomes[0].StatusID)
	assert.Equal(t, "5\n", outcomes[0].Stdout)
	assert.InDelta(t, 0.012, outcomes[0].Time, 1e-9)
	assert.Equal(t, 3040, outcomes[0].Memory)
	assert.True(t, outcomes[0].IsTerminal())

	assert.Equal(t, domain.JudgeStatusProcessing, outcomes[1].StatusID)
	assert.Empty(t, outcomes[1].Stdout)
	assert.Zero(t, outcomes[1].Time)
	assert.False(t, outcomes[1].IsTerminal())
}

func TestClientSurfacesErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "queue full", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.SubmitBatch(context.Background(), []domain.ExecutionRequest{{SourceCode: "code", LanguageID: 71}})
	assert.Error(t, err)

	_, err = client.GetBatchResults(context.Background(), []domain.ExecutionToken{"tok-1"})
	assert.Error(t, err)
}
