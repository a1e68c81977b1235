package pricing

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	productCardSelector = `.search-product-card, [data-test-id*="search-product-card"]`
	titleSelector       = `[data-test-id="search-product-card-name"] p, .search-product-card__product-name`

	maxRedirects = 5
)

var (
	// 依序嘗試，第一個有元素的選擇器才拿來解析
	priceSelectors = []string{
		`[data-test-id="search-product-card-unit-price"]`,
		`.search-product-card__active-price`,
		`[data-test-id="search-product-card-prices"] p:first-child`,
		`.search-product-card__prices p:first-child`,
		`[data-test-id*="current-price"]`,
		`.current-price`,
	}

	pricePerKiloSelectors = []string{
		`[data-test-id="search-product-card-kilo-price"]`,
		`.search-product-card__price-per-unit`,
		`[data-test-id="search-product-card-prices"] p:last-child`,
	}

	pricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+,\d+)\s*€`),
		regexp.MustCompile(`(\d+\.\d+)\s*€`),
		regexp.MustCompile(`€\s*(\d+,\d+)`),
		regexp.MustCompile(`€\s*(\d+\.\d+)`),
		regexp.MustCompile(`(\d+,\d+)`),
		regexp.MustCompile(`(\d+\.\d+)`),
	}
)

// PriceLookup 即時查價；實作不得回傳錯誤，失敗一律以 Found=false 表示
type PriceLookup interface {
	LookupPrice(ctx context.Context, ingredient string) ScrapeResult
}

// Scraper 以零售網站搜尋頁取得商品單價
type Scraper struct {
	client  *resty.Client
	baseURL string
	timeout time.Duration
}

// NewScraper 建立價格抓取器
func NewScraper(cfg config.ScraperConfig) *Scraper {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects)).
		SetHeaders(browserHeaders(cfg.UserAgent))

	return &Scraper{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
	}
}

// browserHeaders 模擬瀏覽器的請求標頭；Accept-Encoding 交給 transport 處理
func browserHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":                userAgent,
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		"Accept-Language":           "es-ES,es;q=0.9",
		"DNT":                       "1",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "cross-site",
		"Sec-Fetch-User":            "?1",
		"Cache-Control":             "no-cache",
		"Pragma":                    "no-cache",
	}
}

// SearchTerm 搜尋用的詞：先翻譯再正規化
func SearchTerm(ingredient string) string {
	return Normalize(Translate(ingredient))
}

// SearchURL 組出搜尋頁網址，空白編碼為 %20
func (s *Scraper) SearchURL(term string) string {
	return s.baseURL + "/search?q=" + strings.ReplaceAll(url.QueryEscape(term), "+", "%20")
}

// LookupPrice 查詢單一食材的價格。
// 網路錯誤、逾時、非 200、找不到商品或價格、甚至解析時 panic 都回傳 Found=false。
func (s *Scraper) LookupPrice(ctx context.Context, ingredient string) (result ScrapeResult) {
	term := SearchTerm(ingredient)
	searchURL := s.SearchURL(term)

	defer func() {
		if r := recover(); r != nil {
			common.LogError("Price lookup panic recovered",
				zap.Any("error", r),
				zap.String("term", term),
			)
			result = notFound()
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.R().
		SetContext(ctx).
		Get(searchURL)
	if err != nil {
		common.LogUpstreamCall("retail", time.Since(start), err, zap.String("term", term))
		return notFound()
	}
	common.LogUpstreamCall("retail", time.Since(start), nil,
		zap.String("term", term),
		zap.Int("status", resp.StatusCode()),
	)

	if resp.StatusCode() != http.StatusOK {
		return notFound()
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		common.LogWarn("Failed to parse retail search page", zap.Error(err), zap.String("term", term))
		return notFound()
	}

	price, perKilo, ok := extractFirstPrice(doc)
	if !ok {
		return notFound()
	}

	return ScrapeResult{
		Price:            &price,
		Currency:         Currency,
		Found:            true,
		SearchURL:        searchURL,
		PricePerKiloText: perKilo,
	}
}

// extractFirstPrice 依文件順序找第一張同時有標題與合格價格的商品卡
func extractFirstPrice(doc *goquery.Document) (price float64, perKilo string, ok bool) {
	doc.Find(productCardSelector).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := strings.TrimSpace(card.Find(titleSelector).Text())
		if title == "" {
			return true
		}

		for _, selector := range priceSelectors {
			el := card.Find(selector)
			if el.Length() == 0 {
				continue
			}
			if p, found := parsePrice(cleanText(el.First().Text())); found {
				price, perKilo, ok = p, firstText(card, pricePerKiloSelectors), true
				return false
			}
		}
		return true
	})
	return price, perKilo, ok
}

// firstText 回傳第一個有元素的選擇器的文字，都沒有時為空字串
func firstText(card *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if el := card.Find(selector); el.Length() > 0 {
			return cleanText(el.First().Text())
		}
	}
	return ""
}

// parsePrice 依序套用價格樣式，超出 [MinPrice, MaxPrice] 的值跳過繼續嘗試
func parsePrice(text string) (float64, bool) {
	for _, re := range pricePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
		if err != nil {
			continue
		}
		if v >= MinPrice && v <= MaxPrice {
			return v, true
		}
	}
	return 0, false
}

// cleanText 去掉 &nbsp; 並合併空白
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
