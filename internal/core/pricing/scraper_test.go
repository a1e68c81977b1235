package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-finder/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const classMarkupPage = `<html><body>
<div class="search-product-card">
  <p class="search-product-card__product-name">Pechuga de pollo</p>
  <p class="search-product-card__active-price">5,49&nbsp;€</p>
  <p class="search-product-card__price-per-unit">(10,98&nbsp;€/KILO)</p>
</div>
</body></html>`

const testIDMarkupPage = `<html><body>
<div data-test-id="search-product-card">
  <div data-test-id="search-product-card-name"><p>Patata blanca</p></div>
  <div data-test-id="search-product-card-prices"><p>2,15 €</p><p>1,08 €/KILO</p></div>
</div>
</body></html>`

const skipCardsPage = `<html><body>
<div class="search-product-card">
  <p class="search-product-card__active-price">3,00 €</p>
</div>
<div class="search-product-card">
  <p class="search-product-card__product-name">Bolsa</p>
  <p class="search-product-card__active-price">0,05 €</p>
</div>
<div class="search-product-card">
  <p class="search-product-card__product-name">Arroz redondo</p>
  <p class="search-product-card__active-price">1,99 €</p>
</div>
</body></html>`

func newTestScraper(baseURL string, timeout time.Duration) *Scraper {
	return NewScraper(config.ScraperConfig{
		BaseURL:     baseURL,
		Timeout:     timeout,
		Concurrency: 1,
		UserAgent:   "test-agent",
	})
}

func servePage(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLookupPriceFound(t *testing.T) {
	var gotQuery, gotPath, gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		_, _ = w.Write([]byte(classMarkupPage))
	}))
	defer srv.Close()

	s := newTestScraper(srv.URL, 2*time.Second)
	res := s.LookupPrice(context.Background(), "Chicken Breast")

	require.True(t, res.Found)
	require.NotNil(t, res.Price)
	assert.Equal(t, 5.49, *res.Price)
	assert.Equal(t, Currency, res.Currency)
	assert.Equal(t, "(10,98 €/KILO)", res.PricePerKiloText)
	assert.Equal(t, srv.URL+"/search?q=pollo", res.SearchURL)

	assert.Equal(t, "/search", gotPath)
	assert.Equal(t, "pollo", gotQuery)
	assert.Equal(t, "test-agent", gotUA)
	assert.Equal(t, "es-ES,es;q=0.9", gotLang)
}

func TestLookupPriceTestIDMarkup(t *testing.T) {
	srv := servePage(t, http.StatusOK, testIDMarkupPage)

	res := newTestScraper(srv.URL, 2*time.Second).LookupPrice(context.Background(), "potatoes")

	require.True(t, res.Found)
	assert.Equal(t, 2.15, *res.Price)
	assert.Equal(t, "1,08 €/KILO", res.PricePerKiloText)
}

func TestLookupPriceSkipsUntitledAndOutOfRangeCards(t *testing.T) {
	srv := servePage(t, http.StatusOK, skipCardsPage)

	res := newTestScraper(srv.URL, 2*time.Second).LookupPrice(context.Background(), "rice")

	require.True(t, res.Found)
	assert.Equal(t, 1.99, *res.Price)
	assert.Empty(t, res.PricePerKiloText)
}

func TestLookupPriceNotFound(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusServiceUnavailable, classMarkupPage},
		{"client error", http.StatusForbidden, classMarkupPage},
		{"no cards", http.StatusOK, `<html><body><p>Sin resultados</p></body></html>`},
		{"unparseable price", http.StatusOK, `<div class="search-product-card"><p class="search-product-card__product-name">Sal</p><p class="current-price">consultar</p></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := servePage(t, tt.status, tt.body)

			res := newTestScraper(srv.URL, 2*time.Second).LookupPrice(context.Background(), "salt")

			assert.False(t, res.Found)
			assert.Nil(t, res.Price)
			assert.Equal(t, Currency, res.Currency)
		})
	}
}

func TestLookupPriceConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	res := newTestScraper(baseURL, time.Second).LookupPrice(context.Background(), "chicken")

	assert.False(t, res.Found)
	assert.Nil(t, res.Price)
}

func TestLookupPriceTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		_, _ = w.Write([]byte(classMarkupPage))
	}))
	defer srv.Close()

	start := time.Now()
	res := newTestScraper(srv.URL, 100*time.Millisecond).LookupPrice(context.Background(), "chicken")

	assert.False(t, res.Found)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSearchURLEncoding(t *testing.T) {
	s := newTestScraper("https://shop.example/", time.Second)

	assert.Equal(t, "https://shop.example/search?q=aceite%20de%20oliva", s.SearchURL("aceite de oliva"))
	assert.Equal(t, "https://shop.example/search?q=", s.SearchURL(""))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		text  string
		want  float64
		found bool
	}{
		{"5,49 €", 5.49, true},
		{"€ 3.20", 3.20, true},
		{"12.5", 12.5, true},
		{"0,05 € 3,50", 3.50, true},
		{"0,05 €", 0, false},
		{"600,00 €", 0, false},
		{"2 €", 0, false},
		{"gratis", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := parsePrice(tt.text)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "1,08 €/KILO", cleanText("  1,08 €/KILO \n"))
	assert.Equal(t, "a b", cleanText("a&nbsp;&nbsp;b"))
}
