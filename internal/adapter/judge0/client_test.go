package judge0

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codeclimb-2025.net/internal/adapter/logging"
	"gitlab.com/codeclimb-2025.net/internal/config"
	"gitlab.com/codeclimb-2025.net/internal/domain"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.JudgeConfig{
		BaseUrl:         baseURL,
		PollInterval:    time.Millisecond,
		MaxPollAttempts: 10,
		RequestTimeout:  time.Second,
	}, logging.NewZapLogger())
}

func TestSubmitReturnsToken(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/submissions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"token":"abc-123"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	token, err := client.Submit(context.Background(), domain.ExecutionRequest{
		SourceCode:     "print(1)",
		LanguageID:     71,
		Stdin:          "in",
		ExpectedOutput: "1",
	})

	require.NoError(t, err)
	assert.Equal(t, "abc-123", token)
	assert.Equal(t, "print(1)", received["source_code"])
	assert.Equal(t, float64(71), received["language_id"])
	assert.Equal(t, "in", received["stdin"])
	assert.Equal(t, "1", received["expected_output"])
}

func TestSubmitEngineRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "queue full", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Submit(context.Background(), domain.ExecutionRequest{SourceCode: "x"})

	require.ErrorIs(t, err, ErrDispatch)
}

func TestSubmitMissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Submit(context.Background(), domain.ExecutionRequest{SourceCode: "x"})

	require.ErrorIs(t, err, ErrDispatch)
}

func TestAwaitResultPollsUntilTerminal(t *testing.T) {
	var polls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/submissions/tok-1", r.URL.Path)
		n := atomic.AddInt32(&polls, 1)
		if n < 3 {
			fmt.Fprint(w, `{"status":{"id":2,"description":"Processing"}}`)
			return
		}
		fmt.Fprint(w, `{
			"status":{"id":3,"description":"Accepted"},
			"stdout":"42\n",
			"stderr":null,
			"compile_output":null,
			"time":"0.013",
			"memory":3456
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	out, err := client.AwaitResult(context.Background(), "tok-1", 10)

	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&polls))
	assert.Equal(t, 3, out.StatusID)
	assert.Equal(t, "Accepted", out.StatusDesc)
	assert.Equal(t, "42\n", out.Stdout)
	assert.Equal(t, "0.013", out.TimeSec)
	assert.Equal(t, int64(3456), out.MemoryKB)
}

func TestAwaitResultAttemptBudgetExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":{"id":1,"description":"In Queue"}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.AwaitResult(context.Background(), "tok-1", 3)

	require.ErrorIs(t, err, ErrPollTimeout)
}

func TestAwaitResultCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":{"id":1,"description":"In Queue"}}`)
	}))
	defer server.Close()

	client := NewClient(&config.JudgeConfig{
		BaseUrl:         server.URL,
		PollInterval:    time.Second,
		MaxPollAttempts: 10,
		RequestTimeout:  time.Second,
	}, logging.NewZapLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.AwaitResult(ctx, "tok-1", 10)

	require.ErrorIs(t, err, context.DeadlineExceeded)
}
