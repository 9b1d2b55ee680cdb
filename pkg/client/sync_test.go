package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftbook-backend/pkg/idtoken"
)

func testAssertion(t *testing.T, name, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name":  name,
		"email": email,
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

// testServer is a minimal stand-in for the author endpoints, counting
// calls so the cache-first policy is observable.
type testServer struct {
	createCalls int
	fetchCalls  int
	updateCalls int

	createdSummary string
	storedSummary  string
	failCreate     bool
}

func (s *testServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/catalog/authors", func(w http.ResponseWriter, r *http.Request) {
		s.createCalls++
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		s.createdSummary = body["summary"]

		if s.failCreate {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"error":   map[string]string{"code": "INTERNAL_SERVER_ERROR", "message": "boom"},
			})
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    body,
		})
	})

	mux.HandleFunc("/catalog/authors/summary/lookup", func(w http.ResponseWriter, r *http.Request) {
		s.fetchCalls++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]string{"summary": s.storedSummary},
		})
	})

	mux.HandleFunc("/catalog/authors/summary", func(w http.ResponseWriter, r *http.Request) {
		s.updateCalls++
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		s.storedSummary = body["summary"]

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]string{"email": body["email"], "summary": body["summary"]},
		})
	})

	return mux
}

func newTestSyncer(t *testing.T, server *testServer) *ProfileSyncer {
	t.Helper()
	ts := httptest.NewServer(server.handler())
	t.Cleanup(ts.Close)

	return NewProfileSyncer(
		idtoken.NewDecoder(""),
		NewAPI(ts.URL),
		NewSession(NewMemoryCache()),
	)
}

func TestSignInPopulatesSessionAndCreatesProfile(t *testing.T) {
	server := &testServer{}
	syncer := newTestSyncer(t, server)

	result, err := syncer.SignIn(context.Background(), testAssertion(t, "Jane Doe", "jane@example.com"))
	require.NoError(t, err)
	require.NoError(t, result.CreateErr)

	assert.Equal(t, "jane@example.com", syncer.Session().Email())
	assert.Equal(t, 1, server.createCalls)
	assert.Equal(t, "My name is Jane Doe and I signed up using Google.", server.createdSummary)
}

func TestSignInMalformedTokenAborts(t *testing.T) {
	server := &testServer{}
	syncer := newTestSyncer(t, server)

	_, err := syncer.SignIn(context.Background(), "garbage")
	assert.ErrorIs(t, err, idtoken.ErrMalformedToken)

	// No partial identity ever reaches the creation endpoint.
	assert.Equal(t, 0, server.createCalls)
	assert.Empty(t, syncer.Session().Email())
}

func TestSignInCreateFailureIsReportedNotFatal(t *testing.T) {
	server := &testServer{failCreate: true}
	syncer := newTestSyncer(t, server)

	result, err := syncer.SignIn(context.Background(), testAssertion(t, "Jane Doe", "jane@example.com"))
	require.NoError(t, err)

	// The failure is surfaced; the session is signed in regardless and
	// the caller chooses whether to care.
	assert.Error(t, result.CreateErr)
	assert.Equal(t, "jane@example.com", syncer.Session().Email())
}

func TestLoadSummaryPrefersCache(t *testing.T) {
	server := &testServer{storedSummary: "from-server"}
	syncer := newTestSyncer(t, server)

	syncer.Session().SetEmail("jane@example.com")
	syncer.Session().Cache().Set("cached locally")

	summary, err := syncer.LoadSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached locally", summary)
	assert.Equal(t, 0, server.fetchCalls)
}

func TestLoadSummaryFetchesOnCacheMiss(t *testing.T) {
	server := &testServer{storedSummary: "from-server"}
	syncer := newTestSyncer(t, server)

	syncer.Session().SetEmail("jane@example.com")

	summary, err := syncer.LoadSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-server", summary)
	assert.Equal(t, 1, server.fetchCalls)

	// The fetched value is now cached; a second load stays local.
	_, err = syncer.LoadSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, server.fetchCalls)
}

func TestSubmitSummaryOverwritesCache(t *testing.T) {
	server := &testServer{}
	syncer := newTestSyncer(t, server)

	syncer.Session().SetEmail("jane@example.com")
	syncer.Session().Cache().Set("old draft")

	require.NoError(t, syncer.SubmitSummary(context.Background(), "new draft"))

	cached, ok := syncer.Session().Cache().Get()
	require.True(t, ok)
	assert.Equal(t, "new draft", cached)
	assert.Equal(t, "new draft", server.storedSummary)
	assert.Equal(t, 1, server.updateCalls)
}
