package echoapi_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/assistant"
	"github.com/trezcool/elimu/core/catalog"
	"github.com/trezcool/elimu/core/history"
)

func Test_assistantApi(t *testing.T) {
	app := setup(t, testSecret)
	ref := assistant.NewService(catalog.Default(), nil)
	ctx := context.Background()

	query := func(q string) []byte { return marchallObj(t, assistant.Query{Query: q}) }
	required := marchallObj(t, map[string]string{"query": "this field is required"})

	tests := []httpTest{
		{name: "catalog", path: "/v1/catalog", wantCode: http.StatusOK, wantData: marchallObj(t, catalog.Default())},
		{
			name: "analyze: greeting", method: http.MethodPost, path: "/v1/assistant/analyze", body: query("Hello!"),
			wantCode: http.StatusOK, wantData: marchallObj(t, ref.Analyze(ctx, "Hello!", core.Requester{})),
		},
		{
			name: "analyze: pricing", method: http.MethodPost, path: "/v1/assistant/analyze", body: query("how much is premium?"),
			wantCode: http.StatusOK, wantData: marchallObj(t, ref.Analyze(ctx, "how much is premium?", core.Requester{})),
		},
		{
			name: "analyze: unknown", method: http.MethodPost, path: "/v1/assistant/analyze", body: query("zzz"),
			wantCode: http.StatusOK, wantData: marchallObj(t, ref.Analyze(ctx, "zzz", core.Requester{})),
		},
		{
			name: "analyze: authenticated", method: http.MethodPost, path: "/v1/assistant/analyze", body: query("hi"),
			token: getToken(t, "user-1", "authenticated"), wantCode: http.StatusOK,
			wantData: marchallObj(t, ref.Analyze(ctx, "hi", core.Requester{})),
		},
		{name: "analyze: missing query", method: http.MethodPost, path: "/v1/assistant/analyze", body: []byte(`{}`), wantCode: http.StatusBadRequest, wantData: required},
		{name: "analyze: invalid body", method: http.MethodPost, path: "/v1/assistant/analyze", body: []byte(`{"query":`), wantCode: http.StatusBadRequest},
		{
			name: "analyze: invalid token", method: http.MethodPost, path: "/v1/assistant/analyze", body: query("hi"),
			token: "not-a-jwt", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid or expired jwt"}),
		},
		{
			name: "analyze: wrong audience", method: http.MethodPost, path: "/v1/assistant/analyze", body: query("hi"),
			token: getToken(t, "user-1", "anon"), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "user not authenticated"}),
		},
		{
			name: "reply: feature", method: http.MethodPost, path: "/v1/assistant/reply", body: query("tell me about flashcards"),
			wantCode: http.StatusOK, wantData: marchallObj(t, ref.Reply(ctx, "tell me about flashcards", core.Requester{})),
		},
		{
			name: "reply: subject", method: http.MethodPost, path: "/v1/assistant/reply", body: query("can you explain algebra"),
			wantCode: http.StatusOK, wantData: marchallObj(t, ref.Reply(ctx, "can you explain algebra", core.Requester{})),
		},
		{name: "reply: missing query", method: http.MethodPost, path: "/v1/assistant/reply", body: []byte(`{"query":""}`), wantCode: http.StatusBadRequest, wantData: required},
	}
	runHTTPTests(t, app, tests)

	t.Run("query too long", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/assistant/analyze", query(strings.Repeat("a", 2001)))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"query"`)
	})

	t.Run("queries are recorded", func(t *testing.T) {
		recs, err := app.repo.FilterQueryRecords(ctx, history.QueryFilter{UserID: "user-1"})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "hi", recs[0].Query)
		assert.Equal(t, assistant.TypeGreeting, recs[0].Type)
	})
}
