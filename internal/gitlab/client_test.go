package gitlab

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbbwagh/gitlab-mcp/internal/config"
)

// newTestClient wires a Client to an httptest server standing in for GitLab
func newTestClient(t *testing.T, handler http.Handler, perPage int) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.GitLabConfig{
		BaseURL: server.URL,
		Token:   "test-token",
		PerPage: perPage,
	})
}

func TestAuthorizationHeaderSent(t *testing.T) {
	var gotAuth, gotContentType string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewEncoder(w).Encode(Project{ID: 1, Name: "demo"})
	}), 100)

	_, err := client.GetProject(context.Background(), "group/demo")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Empty(t, gotContentType) // GET carries no body
}

func TestProjectRefPercentEncoded(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_ = json.NewEncoder(w).Encode(Project{ID: 7})
	}), 100)

	_, err := client.GetProject(context.Background(), "group/sub/demo")
	require.NoError(t, err)

	assert.Equal(t, "/projects/group%2Fsub%2Fdemo", gotPath)
}

func TestAPIErrorCarriesStatusAndBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"403 Forbidden"}`))
	}), 100)

	_, err := client.GetProject(context.Background(), "1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, `{"message":"403 Forbidden"}`, apiErr.Body)
	assert.Contains(t, apiErr.Error(), "GitLab API error 403")
}

func TestDecodeFailureNamesOperation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}), 100)

	_, err := client.GetProject(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode get project response")

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "decode failures are not API errors")
}
