package graph

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClementRollin/LinkedIn-GraphQL/internal/auth"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/config"
)

func TestHandlerServesQueries(t *testing.T) {
	schema, store := newTestSchema(t)
	alice := mustUser(t, store, "Alice", "Go")
	mustConnect(t, store, alice, mustUser(t, store, "Bob"))

	h := auth.Middleware(&config.Config{})(NewHandler(&schema))

	body := `{"query":"query ($id: Int!) { user(id: $id) { name connections { name } } viewer { name } }","variables":{"id":1}}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "2")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			User struct {
				Name        string    `json:"name"`
				Connections []userRef `json:"connections"`
			} `json:"user"`
			Viewer *userRef `json:"viewer"`
		} `json:"data"`
		Errors []json.RawMessage `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Empty(t, resp.Errors)
	assert.Equal(t, "Alice", resp.Data.User.Name)
	assert.Equal(t, []string{"Bob"}, names(resp.Data.User.Connections))
	require.NotNil(t, resp.Data.Viewer)
	assert.Equal(t, "Bob", resp.Data.Viewer.Name)
}

func TestHandlerReportsErrorCodes(t *testing.T) {
	schema, _ := newTestSchema(t)
	h := NewHandler(&schema)

	req := httptest.NewRequest(http.MethodPost, "/graphql",
		strings.NewReader(`{"query":"mutation { createComment(postId: 5, authorId: 5, content: \"x\") { id } }"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	var resp struct {
		Errors []struct {
			Message    string                 `json:"message"`
			Extensions map[string]interface{} `json:"extensions"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "INVALID", resp.Errors[0].Extensions["code"])
}
