package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intent-chat/chat"
	"intent-chat/config"
	"intent-chat/intent"
	"intent-chat/service/envelope"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingResponder struct {
	messages []string
	reply    chat.Reply
}

func (r *recordingResponder) Respond(_ context.Context, message string) chat.Reply {
	r.messages = append(r.messages, message)
	return r.reply
}

func testConfig(origins ...string) config.Config {
	return config.Config{
		ServerName:       "intent-chat",
		Port:             8080,
		CORSAllowOrigins: origins,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postChat(t *testing.T, router http.Handler, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope.ResponseBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp envelope.ResponseBody
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestChat_Success(t *testing.T) {
	responder := &recordingResponder{reply: chat.Reply{Intent: intent.Unknown, Text: "hi"}}
	router := NewRouter(testConfig("*"), responder, testLogger())

	rec, resp := postChat(t, router, `{"message":"hello there"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hi", resp.Response)
	assert.Equal(t, []string{"hello there"}, responder.messages)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestChat_FaultIsStill200(t *testing.T) {
	responder := &recordingResponder{reply: chat.Reply{Err: assert.AnError}}
	router := NewRouter(testConfig("*"), responder, testLogger())

	rec, resp := postChat(t, router, `{"message":"country France"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "⚠️ Error: "+assert.AnError.Error(), resp.Response)
}

func TestChat_MalformedBody(t *testing.T) {
	responder := &recordingResponder{}
	router := NewRouter(testConfig("*"), responder, testLogger())

	rec, resp := postChat(t, router, `{"message":`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(resp.Response, "⚠️ Error: "))
	assert.Empty(t, responder.messages)
}

func TestChat_EmptyBodyIsEmptyMessage(t *testing.T) {
	responder := &recordingResponder{reply: chat.Reply{Text: "Please enter a message."}}
	router := NewRouter(testConfig("*"), responder, testLogger())

	rec, resp := postChat(t, router, ``, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Please enter a message.", resp.Response)
	assert.Equal(t, []string{""}, responder.messages)
}

func TestChat_KeepsCallerRequestID(t *testing.T) {
	router := NewRouter(testConfig("*"), &recordingResponder{}, testLogger())

	rec, _ := postChat(t, router, `{"message":"x"}`, map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestChat_CORS(t *testing.T) {
	router := NewRouter(testConfig("http://localhost:3000"), &recordingResponder{}, testLogger())

	rec, _ := postChat(t, router, `{"message":"x"}`, map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	rec, _ = postChat(t, router, `{"message":"x"}`, map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestChat_CORSAnyOrigin(t *testing.T) {
	router := NewRouter(testConfig("*"), &recordingResponder{}, testLogger())

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://chat.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://chat.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	router := NewRouter(testConfig("*"), &recordingResponder{}, testLogger())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"intent-chat"}`, rec.Body.String())
}

func TestMetrics(t *testing.T) {
	router := NewRouter(testConfig("*"), &recordingResponder{}, testLogger())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// Full stack: router, responder and upstream clients against a fake country API.
func TestChat_EndToEnd(t *testing.T) {
	countriesAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/name/France" {
			_, _ = w.Write([]byte(`[{"name":{"common":"France"},"capital":["Paris"],"region":"Europe","population":67391582}]`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer countriesAPI.Close()

	cfg := testConfig("*")
	cfg.Upstream = config.UpstreamConfig{Timeout: time.Second, CountriesURL: countriesAPI.URL, NationalizeURL: countriesAPI.URL}
	router := NewRouter(cfg, chat.New(cfg, testLogger()), testLogger())

	_, resp := postChat(t, router, `{"message": "what is the capital of country France"}`, nil)
	assert.Equal(t, "🌎 Country: France\nCapital: Paris\nRegion: Europe\nPopulation: 67,391,582\n", resp.Response)

	_, resp = postChat(t, router, `{"message": "country Zzzland"}`, nil)
	assert.Equal(t, "Sorry, I couldn't find the country 'Zzzland'.", resp.Response)

	_, resp = postChat(t, router, `{"message": ""}`, nil)
	assert.Equal(t, "Please enter a message.", resp.Response)

	_, resp = postChat(t, router, `{"message": "hello there"}`, nil)
	assert.Equal(t, "🤖 I can help you with countries or name ethnicity! Try asking about one.", resp.Response)
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), testLogger())
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestChat_TrailingDataIsRejected(t *testing.T) {
	responder := &recordingResponder{}
	router := NewRouter(testConfig("*"), responder, testLogger())

	rec, resp := postChat(t, router, `{"message":"hello there"} xyz`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(resp.Response, "⚠️ Error: "))
	assert.Empty(t, responder.messages)
}

func TestChat_BindErrorLogsRequestID(t *testing.T) {
	var logs strings.Builder
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	router := NewRouter(testConfig("*"), &recordingResponder{}, logger)

	postChat(t, router, `{"message":`, map[string]string{"X-Request-ID": "req-42"})

	var bindLine string
	for _, line := range strings.Split(logs.String(), "\n") {
		if strings.Contains(line, "failed to bind request") {
			bindLine = line
		}
	}
	require.NotEmpty(t, bindLine)
	assert.Contains(t, bindLine, "request_id=req-42")
}
