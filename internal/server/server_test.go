package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querysim/querysim/internal/analytics"
	"github.com/querysim/querysim/internal/auth"
	"github.com/querysim/querysim/internal/schema"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc, err := analytics.NewService(schema.Default(), 42, nil)
	require.NoError(t, err)

	authn := auth.New("analyst", "analystpass", 30*time.Minute)
	srv := New(svc, authn, nil, nil, 0)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts
}

func postJSON(t *testing.T, url, token, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func obtainToken(t *testing.T, baseURL string) string {
	t.Helper()

	resp := postJSON(t, baseURL+"/token", "",
		`{"username":"analyst","password":"analystpass"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token auth.Token
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	require.NotEmpty(t, token.AccessToken)

	return token.AccessToken
}

func TestTokenEndpoint(t *testing.T) {
	ts := newTestServer(t)

	t.Run("valid credentials", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/token", "",
			`{"username":"analyst","password":"analystpass"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var token auth.Token
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
		assert.Equal(t, "bearer", token.TokenType)
		assert.Equal(t, 1800, token.ExpiresIn)
	})

	t.Run("bad credentials", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/token", "",
			`{"username":"analyst","password":"nope"}`)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/token", "", `{"username":"analyst"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestAPIRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/query", "/api/explain", "/api/validate"} {
		t.Run(path, func(t *testing.T) {
			resp := postJSON(t, ts.URL+path, "", `{"query":"anything"}`)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
		})
	}

	t.Run("garbage token", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/query", "not-a-real-token", `{"query":"x"}`)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestQueryEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := obtainToken(t, ts.URL)

	resp := postJSON(t, ts.URL+"/api/query", token,
		`{"query":"Show me the top 5 customers by revenue"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		OriginalQuery   string           `json:"original_query"`
		TranslatedQuery string           `json:"translated_query"`
		Result          []map[string]any `json:"result"`
		ExecutionTime   float64          `json:"execution_time"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Equal(t, "Show me the top 5 customers by revenue", result.OriginalQuery)
	assert.Equal(t,
		"SELECT revenue FROM customers ORDER BY revenue DESC LIMIT 5",
		result.TranslatedQuery)
	assert.Len(t, result.Result, 5)
}

func TestExplainEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := obtainToken(t, ts.URL)

	resp := postJSON(t, ts.URL+"/api/explain", token,
		`{"query":"What were the sales last quarter"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Summary string   `json:"summary"`
		Steps   []string `json:"steps"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.Contains(t, result.Summary, "SELECT SUM(amount) FROM sales")
	assert.Len(t, result.Steps, 5)
}

func TestValidateEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := obtainToken(t, ts.URL)

	resp := postJSON(t, ts.URL+"/api/validate", token, `{"query":"foobar"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		IsValid     bool     `json:"is_valid"`
		Reasons     []string `json:"reasons"`
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	assert.False(t, result.IsValid)
	assert.Len(t, result.Reasons, 3)
	assert.Len(t, result.Suggestions, 3)
}

func TestBadRequestBodies(t *testing.T) {
	ts := newTestServer(t)
	token := obtainToken(t, ts.URL)

	t.Run("malformed json", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/query", token, `{"query":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty query", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/api/query", token, `{"query":""}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("oversized body", func(t *testing.T) {
		huge := `{"query":"` + strings.Repeat("a", 2<<20) + `"}`
		resp := postJSON(t, ts.URL+"/api/query", token, huge)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status         string `json:"status"`
		Version        string `json:"version"`
		DatabaseStatus string `json:"database_status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))

	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "absent", health.DatabaseStatus)
}
