package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recipe-finder/internal/core/suggestion"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSuggester struct {
	suggestions []string
	err         error
	gotRecipe   string
	calls       int
}

func (f *fakeSuggester) Suggest(_ context.Context, _ []string, recipe string) ([]string, error) {
	f.calls++
	f.gotRecipe = recipe
	return f.suggestions, f.err
}

func suggest(s Suggester, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ai/suggest-recipes", NewAIHandler(s).SuggestRecipes)

	req := httptest.NewRequest(http.MethodPost, "/ai/suggest-recipes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSuggestRecipes(t *testing.T) {
	s := &fakeSuggester{suggestions: []string{"Tortilla", "Gazpacho"}}

	w := suggest(s, `{"availableIngredients":["huevos","patatas"],"recipe":"Tortilla"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suggestions":["Tortilla","Gazpacho"]}`, w.Body.String())
	assert.Equal(t, "Tortilla", s.gotRecipe)
}

func TestSuggestRecipesValidation(t *testing.T) {
	for _, body := range []string{`{}`, `{"availableIngredients":[]}`, `{"availableIngredients":"huevos"}`, `nope`} {
		s := &fakeSuggester{}
		w := suggest(s, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Zero(t, s.calls, body)
	}
}

func TestSuggestRecipesErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{suggestion.ErrNoIngredients, http.StatusBadRequest},
		{suggestion.ErrDisabled, http.StatusServiceUnavailable},
		{errors.New("model overloaded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := suggest(&fakeSuggester{err: tt.err}, `{"availableIngredients":["arroz"]}`)
		assert.Equal(t, tt.status, w.Code, tt.err.Error())
	}
}
