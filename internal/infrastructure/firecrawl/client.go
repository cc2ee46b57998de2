package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/cfg"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/sanitize"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

const (
	maxBodyBytes   = 10 << 20
	bodyExcerptLen = 200
	unknownError   = "Unknown Firecrawl error"
)

// Client вызывает Firecrawl scrape API. Один запрос на вызов, без повторов.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	logger  logger.Logger
}

// NewClient возвращает клиент; Timeout == 0 оставляет таймаут транспорта по умолчанию.
func NewClient(c *cfg.FirecrawlCfg, httpClient *http.Client, logger logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: c.Timeout}
	}

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(c.BaseURL, "/"),
		apiKey:  c.APIKey,
		logger:  logger,
	}
}

// Extract запрашивает страницу товара и разбирает структурированный ответ.
// Ошибки имеют тип *e.ExtractionError.
func (c *Client) Extract(ctx context.Context, req *usecase.ExtractReq) (*usecase.ExtractRes, error) {
	if c.apiKey == "" {
		return nil, e.NewTransportError(0, "", e.ErrMissingAPIKey)
	}

	body, err := json.Marshal(newScrapeRequest(req.URL, string(req.Region)))
	if err != nil {
		return nil, e.NewTransportError(0, "", e.Wrap(whereami.WhereAmI(), err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+scrapePath, bytes.NewReader(body))
	if err != nil {
		return nil, e.NewTransportError(0, "", e.Wrap(whereami.WhereAmI(), err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, e.NewTransportError(0, "", e.Wrap(whereami.WhereAmI(), err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, e.NewTransportError(resp.StatusCode, "", e.Wrap(whereami.WhereAmI(), err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt := excerpt(raw)
		c.logger.Warnf("Firecrawl API %d: %s", resp.StatusCode, excerpt)

		xerr := e.NewTransportError(resp.StatusCode, excerpt, nil)
		xerr.Raw, _ = json.Marshal(transportRaw{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		})
		return nil, xerr
	}

	var parsed scrapeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		xerr := e.NewTransportError(resp.StatusCode, excerpt(raw), fmt.Errorf("decode response: %w", err))
		xerr.Raw = validJSONOrNil(raw)
		return nil, xerr
	}

	if !parsed.Success || parsed.Data == nil {
		msg := parsed.Error
		if msg == "" {
			msg = unknownError
		}
		xerr := e.NewReportedError(msg)
		xerr.Raw = raw
		return nil, xerr
	}

	price, coerced := parsePrice(parsed.Data.JSON.Price)
	if coerced {
		c.logger.Warnf("Firecrawl returned malformed price %s for %s, coerced to 0", string(parsed.Data.JSON.Price), req.URL)
	}

	return &usecase.ExtractRes{
		Title:         sanitize.Text(parsed.Data.JSON.Title),
		Price:         price,
		PriceCoerced:  coerced,
		Currency:      strings.TrimSpace(parsed.Data.JSON.Currency),
		ImageURL:      strings.TrimSpace(parsed.Data.JSON.ImageURL),
		MetadataTitle: sanitize.Text(parsed.Data.Metadata.Title),
		Raw:           raw,
	}, nil
}

// parsePrice принимает число или числовую строку; всё остальное даёт 0 и coerced=true.
// Отсутствующая цена и null тоже дают 0, но не считаются искажением.
func parsePrice(raw json.RawMessage) (decimal.Decimal, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Zero, false
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return decimal.Zero, true
		}
		s = strings.ReplaceAll(strings.TrimSpace(str), ",", "")
	}

	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true
	}

	return price.Round(2), false
}

// excerpt обрезает тело ответа до bodyExcerptLen байт. Текст уходит в TEXT-колонку журнала,
// поэтому разрезанный символ, невалидный UTF-8 и NUL удаляются.
func excerpt(body []byte) string {
	s := string(body)
	if len(s) > bodyExcerptLen {
		s = s[:bodyExcerptLen]
	}

	return strings.ReplaceAll(strings.ToValidUTF8(s, ""), "\x00", "")
}

func validJSONOrNil(b []byte) []byte {
	if json.Valid(b) {
		return b
	}

	return nil
}
