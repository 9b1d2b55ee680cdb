package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftbook-backend/internal/domains/author"
	"draftbook-backend/internal/domains/author/service"
	"draftbook-backend/internal/domains/book"
)

// In-memory repositories so the handler tests exercise the full
// handler+service pipeline, including validation and sanitization.

type memAuthorRepo struct {
	records []author.Author
}

func (m *memAuthorRepo) Create(_ context.Context, a *author.Author) (*author.Author, error) {
	created := *a
	created.ID = uuid.New()
	m.records = append(m.records, created)
	return &created, nil
}

func (m *memAuthorRepo) GetByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	for _, a := range m.records {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (m *memAuthorRepo) GetByEmail(_ context.Context, email string) (*author.Author, error) {
	for _, a := range m.records {
		if a.Email == email {
			found := a
			return &found, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (m *memAuthorRepo) GetAll(_ context.Context) ([]author.Author, error) {
	out := make([]author.Author, len(m.records))
	copy(out, m.records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *memAuthorRepo) UpdateSummaryByEmail(_ context.Context, email, summary string) (*author.Author, error) {
	var updated *author.Author
	for i := range m.records {
		if m.records[i].Email == email {
			m.records[i].Summary = summary
			if updated == nil {
				found := m.records[i]
				updated = &found
			}
		}
	}
	if updated == nil {
		return nil, author.ErrAuthorNotFound
	}
	return updated, nil
}

func (m *memAuthorRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, a := range m.records {
		if a.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return author.ErrAuthorNotFound
}

type memBookRepo struct {
	books map[uuid.UUID][]book.Book
}

func (m *memBookRepo) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]book.Book, error) {
	return m.books[authorID], nil
}

func (m *memBookRepo) CountByAuthor(_ context.Context, authorID uuid.UUID) (int, error) {
	return len(m.books[authorID]), nil
}

func setupRouter() (*gin.Engine, *memAuthorRepo, *memBookRepo) {
	gin.SetMode(gin.TestMode)

	repo := &memAuthorRepo{}
	books := &memBookRepo{books: map[uuid.UUID][]book.Book{}}
	h := NewAuthorHandler(service.NewAuthorService(repo, books))

	router := gin.New()
	authors := router.Group("/catalog/authors")
	{
		authors.GET("", h.List)
		authors.POST("", h.Create)
		authors.PUT("/summary", h.UpdateSummary)
		authors.POST("/summary", h.UpdateSummary)
		authors.POST("/summary/lookup", h.SummaryLookup)
		authors.GET("/:id", h.Detail)
		authors.GET("/:id/delete", h.DeleteConfirm)
		authors.POST("/:id/delete", h.DeleteSubmit)
	}
	return router, repo, books
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func createAuthor(t *testing.T, router *gin.Engine, name, email, summary string) author.Author {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/catalog/authors", gin.H{
		"name": name, "email": email, "summary": summary,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	var created author.Author
	require.NoError(t, json.Unmarshal(env.Data, &created))
	return created
}

func TestCreateAuthorEndpoint(t *testing.T) {
	router, _, _ := setupRouter()

	created := createAuthor(t, router, "Jane Doe", "jane@example.com", "Hi")
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Jane Doe", created.Name)
	assert.Equal(t, "Hi", created.Summary)
}

func TestCreateAuthorValidationFailure(t *testing.T) {
	router, _, _ := setupRouter()

	w := doJSON(router, http.MethodPost, "/catalog/authors", gin.H{
		"name": "Bad!!", "email": "jane@example.com", "summary": "x",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	fields := make([]string, 0, len(env.Error.Details))
	for _, d := range env.Error.Details {
		fields = append(fields, d.Field)
	}
	assert.Contains(t, fields, "name")
}

func TestCreateTwiceProducesDistinctRecords(t *testing.T) {
	// The creation endpoint does not upsert; this pins the documented
	// duplicate-creating behavior.
	router, repo, _ := setupRouter()

	first := createAuthor(t, router, "Jane Doe", "jane@example.com", "Hi")
	second := createAuthor(t, router, "Jane Doe", "jane@example.com", "Hi")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, repo.records, 2)
}

func TestListOrderedByEmail(t *testing.T) {
	router, _, _ := setupRouter()

	createAuthor(t, router, "Zoe Smith", "zoe@example.com", "Hi")
	createAuthor(t, router, "Amy Jones", "amy@example.com", "Hi")

	w := doJSON(router, http.MethodGet, "/catalog/authors", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var authors []author.Author
	require.NoError(t, json.Unmarshal(env.Data, &authors))
	require.Len(t, authors, 2)
	assert.Equal(t, "amy@example.com", authors[0].Email)
	assert.Equal(t, "zoe@example.com", authors[1].Email)
}

func TestDetailReturnsAuthorWithBooks(t *testing.T) {
	router, _, books := setupRouter()

	created := createAuthor(t, router, "Jane Doe", "jane@example.com", "Hi")
	books.books[created.ID] = []book.Book{
		{ID: uuid.New(), AuthorID: created.ID, Title: "The Book", Summary: "About things"},
	}

	w := doJSON(router, http.MethodGet, "/catalog/authors/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var detail author.AuthorDetailResponse
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, created.ID, detail.Author.ID)
	require.Len(t, detail.Books, 1)
	assert.Equal(t, "The Book", detail.Books[0].Title)
}

func TestDetailUnknownAuthor(t *testing.T) {
	router, _, _ := setupRouter()

	w := doJSON(router, http.MethodGet, "/catalog/authors/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateSummaryFlow(t *testing.T) {
	// End-to-end: create, update by email, read back.
	router, _, _ := setupRouter()

	createAuthor(t, router, "Jane Doe", "jane@example.com", "Hi")

	w := doJSON(router, http.MethodPut, "/catalog/authors/summary", gin.H{
		"email": "jane@example.com", "summary": "Updated",
	})
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var updated author.Author
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Updated", updated.Summary)

	w = doJSON(router, http.MethodPost, "/catalog/authors/summary/lookup", gin.H{
		"email": "jane@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	env = decodeEnvelope(t, w)
	var lookup author.SummaryResponse
	require.NoError(t, json.Unmarshal(env.Data, &lookup))
	assert.Equal(t, "Updated", lookup.Summary)
}

func TestSummaryLookupTrimsEmail(t *testing.T) {
	router, _, _ := setupRouter()

	createAuthor(t, router, "Jane Doe", "jane@example.com", "Hi")

	w := doJSON(router, http.MethodPost, "/catalog/authors/summary/lookup", gin.H{
		"email": "  jane@example.com ",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	var lookup author.SummaryResponse
	require.NoError(t, json.Unmarshal(env.Data, &lookup))
	assert.Equal(t, "Hi", lookup.Summary)
}

func TestUpdateSummaryUnknownEmail(t *testing.T) {
	router, _, _ := setupRouter()

	w := doJSON(router, http.MethodPut, "/catalog/authors/summary", gin.H{
		"email": "nobody@example.com", "summary": "Updated",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateSummaryInvalidFields(t *testing.T) {
	router, _, _ := setupRouter()

	w := doJSON(router, http.MethodPut, "/catalog/authors/summary", gin.H{
		"email": "not-an-email", "summary": "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteConfirmRedirectsWhenAbsent(t *testing.T) {
	router, _, _ := setupRouter()

	w := doJSON(router, http.MethodGet, fmt.Sprintf("/catalog/authors/%s/delete", uuid.NewString()), nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/catalog/authors", w.Header().Get("Location"))
}

func TestDeleteSubmitRemovesAuthorWithoutBooks(t *testing.T) {
	router, _, _ := setupRouter()

	created := createAuthor(t, router, "Jane Doe", "jane@example.com", "Hi")

	w := doJSON(router, http.MethodPost, fmt.Sprintf("/catalog/authors/%s/delete", created.ID), gin.H{
		"authorid": created.ID.String(),
	})
	assert.Equal(t, http.StatusFound, w.Code)

	w = doJSON(router, http.MethodGet, "/catalog/authors/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSubmitRerendersWhenBooksExist(t *testing.T) {
	router, _, books := setupRouter()

	created := createAuthor(t, router, "Jane Doe", "jane@example.com", "Hi")
	books.books[created.ID] = []book.Book{
		{ID: uuid.New(), AuthorID: created.ID, Title: "The Book"},
	}

	w := doJSON(router, http.MethodPost, fmt.Sprintf("/catalog/authors/%s/delete", created.ID), gin.H{
		"authorid": created.ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var detail author.AuthorDetailResponse
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	require.Len(t, detail.Books, 1)

	// The refused delete leaves the author in place.
	w = doJSON(router, http.MethodGet, "/catalog/authors/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
