package favorite

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recipe-finder/internal/core/catalog"
	favoriteStore "recipe-finder/internal/core/favorite"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	meals  map[string]string
	failed map[string]bool
}

func (f *fakeCatalog) LookupByID(_ context.Context, id string) (*catalog.Meal, error) {
	if f.failed[id] {
		return nil, errors.New("upstream timeout")
	}
	name, ok := f.meals[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &catalog.Meal{ID: id, Name: name}, nil
}

func newTestRouter() (*gin.Engine, *favoriteStore.MemoryStore, *fakeCatalog) {
	gin.SetMode(gin.TestMode)
	store := favoriteStore.NewMemoryStore()
	cat := &fakeCatalog{
		meals:  map[string]string{"52771": "Arrabiata", "52772": "Teriyaki Chicken", "52773": "Salmon"},
		failed: map[string]bool{},
	}
	h := NewHandler(store, cat)

	r := gin.New()
	r.POST("/favorites", h.HandleAdd)
	r.DELETE("/favorites", h.HandleRemove)
	r.GET("/favorites", h.HandleList)
	r.GET("/favorites/check", h.HandleCheck)
	return r, store, cat
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddFavorite(t *testing.T) {
	r, store, _ := newTestRouter()

	w := send(r, http.MethodPost, "/favorites", `{"recipeId":"52771","userId":7}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Favourite added successfully","data":"52771","alreadyExists":false}`, w.Body.String())

	w = send(r, http.MethodPost, "/favorites", `{"recipeId":"52771","userId":"7"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Recipe already in favorites"}`, w.Body.String())

	ids, err := store.List(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"52771"}, ids)
}

func TestAddFavoriteErrors(t *testing.T) {
	r, _, cat := newTestRouter()
	cat.failed["52773"] = true

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"missing user", `{"recipeId":"52771"}`, http.StatusBadRequest},
		{"zero-length id", `{"recipeId":"","userId":"1"}`, http.StatusBadRequest},
		{"unknown recipe", `{"recipeId":"1","userId":"1"}`, http.StatusNotFound},
		{"catalog failure", `{"recipeId":"52773","userId":"1"}`, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, send(r, http.MethodPost, "/favorites", tt.body).Code)
		})
	}
}

func TestRemoveFavorite(t *testing.T) {
	r, store, _ := newTestRouter()
	_, err := store.Add(context.Background(), "7", "52771")
	require.NoError(t, err)

	w := send(r, http.MethodDelete, "/favorites", `{"recipeId":"52771","userId":"7"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Recipe removed from favorites successfully","isFavorite":false}`, w.Body.String())

	w = send(r, http.MethodDelete, "/favorites", `{"recipeId":"52771","userId":"7"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"No record found to delete","isFavorite":false}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodDelete, "/favorites", `{}`).Code)
}

func TestListFavorites(t *testing.T) {
	r, store, cat := newTestRouter()
	ctx := context.Background()
	for _, id := range []string{"52773", "52771", "gone", "52772"} {
		_, err := store.Add(ctx, "7", id)
		require.NoError(t, err)
	}
	cat.failed["52772"] = true

	w := send(r, http.MethodGet, "/favorites?userId=7", "")
	require.Equal(t, http.StatusOK, w.Code)

	var meals []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meals))
	require.Len(t, meals, 2)
	assert.Equal(t, "52773", meals[0]["idMeal"])
	assert.Equal(t, "52771", meals[1]["idMeal"])

	w = send(r, http.MethodGet, "/favorites?userId=8", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodGet, "/favorites", "").Code)
}

func TestCheckFavorite(t *testing.T) {
	r, store, _ := newTestRouter()
	_, err := store.Add(context.Background(), "7", "52771")
	require.NoError(t, err)

	w := send(r, http.MethodGet, "/favorites/check?recipeId=52771&userId=7", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isFavorite":true}`, w.Body.String())

	w = send(r, http.MethodGet, "/favorites/check?recipeId=52772&userId=7", "")
	assert.JSONEq(t, `{"isFavorite":false}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodGet, "/favorites/check?userId=7", "").Code)
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "7", idString(float64(7)))
	assert.Equal(t, "52771", idString(" 52771 "))
	assert.Equal(t, "", idString(nil))
	assert.Equal(t, "", idString(true))
}
