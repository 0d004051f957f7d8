package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drinkingman/internal/catalog"
	"drinkingman/internal/database"
	"drinkingman/internal/suggest"
)

// fakeProvider is a canned suggest.Provider for handler tests.
type fakeProvider struct {
	output string
	err    error
}

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return f.output, f.err
}

func (f *fakeProvider) StreamComplete(ctx context.Context, prompt string, onChunk func(string) error) (string, error) {
	if err := onChunk(f.output); err != nil {
		return "", err
	}
	return f.output, f.err
}

func testCatalog() *catalog.Store {
	return catalog.New([]catalog.Cocktail{
		{
			ID: "11007", Name: "Margarita", Category: "Ordinary Drink", Alcoholic: catalog.Alcoholic,
			Ingredients: []catalog.Ingredient{{Name: "Tequila"}, {Name: "Triple sec"}, {Name: "Lime juice"}},
		},
		{
			ID: "12345", Name: "Kamikaze Shot", Category: "Shot", Alcoholic: catalog.Alcoholic,
			Ingredients: []catalog.Ingredient{{Name: "Vodka"}, {Name: "Triple sec"}, {Name: "Lime juice"}},
		},
		{
			ID: "13000", Name: "Gin Tonic", Category: "Ordinary Drink", Alcoholic: catalog.Alcoholic,
			Ingredients: []catalog.Ingredient{{Name: "Gin"}, {Name: "Tonic water"}},
		},
	})
}

func newTestServer(t *testing.T, provider suggest.Provider) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A fresh connection would see a fresh in-memory database.
	db.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	var svc *suggest.Service
	if provider != nil {
		svc = suggest.NewService(provider, 0)
	}

	return NewServer(testCatalog(), db, svc, nil, "test-secret")
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// register creates a user and returns its session token.
func register(t *testing.T, s *Server, username string) (id, token string) {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username, "password": "123qwe",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID, resp.Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	w := doJSON(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, nil)
	register(t, s, "caio")

	// Duplicate username rejected.
	w := doJSON(t, s, http.MethodPost, "/api/auth/register", "", gin.H{"username": "caio", "password": "x"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/auth/login", "", gin.H{"username": "caio", "password": "123qwe"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/auth/login", "", gin.H{"username": "caio", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/auth/login", "", gin.H{"username": "ghost", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListCocktailsFiltering(t *testing.T) {
	s := newTestServer(t, nil)

	var resp struct {
		Cocktails []catalog.Cocktail `json:"cocktails"`
		Total     int                `json:"total"`
		Page      int                `json:"page"`
	}

	w := doJSON(t, s, http.MethodGet, "/api/cocktails?category=Shot&search=mar", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Total)

	w = doJSON(t, s, http.MethodGet, "/api/cocktails?category=Shot&search=kam", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Kamikaze Shot", resp.Cocktails[0].Name)

	// Two ingredient filters AND together.
	w = doJSON(t, s, http.MethodGet, "/api/cocktails?ingredient=Vodka&ingredient=Lime+juice", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Kamikaze Shot", resp.Cocktails[0].Name)

	// Out-of-range pages clamp.
	w = doJSON(t, s, http.MethodGet, "/api/cocktails?page=99", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 3, resp.Total)
}

func TestGetCocktail(t *testing.T) {
	s := newTestServer(t, nil)

	w := doJSON(t, s, http.MethodGet, "/api/cocktails/11007", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Margarita")

	w = doJSON(t, s, http.MethodGet, "/api/cocktails/0", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListIngredientsFallsBackToCatalog(t *testing.T) {
	s := newTestServer(t, nil)

	w := doJSON(t, s, http.MethodGet, "/api/ingredients", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ingredients []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ingredients))

	names := make([]string, 0, len(ingredients))
	for _, i := range ingredients {
		names = append(names, i.Name)
	}
	assert.Contains(t, names, "Tequila")
	assert.Contains(t, names, "Tonic water")
}

func TestBarsRequireAuth(t *testing.T) {
	s := newTestServer(t, nil)

	w := doJSON(t, s, http.MethodGet, "/api/bars", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/bars", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
