package firecrawl

import "encoding/json"

const (
	scrapePath = "/v1/scrape"

	scrollDistance = 1000
	waitMillis     = 5000

	extractionPrompt = "Return valid JSON with the product title, numeric price, currency, and image URL. " +
		"The title must be the specific product name, NOT 'Continue Shopping' or 'Amazon'. " +
		"The price must be the current buying price. If unavailable, return price: 0."
)

type scrapeRequest struct {
	URL         string      `json:"url"`
	Formats     []string    `json:"formats"`
	Location    location    `json:"location"`
	Actions     []action    `json:"actions"`
	JSONOptions jsonOptions `json:"jsonOptions"`
}

type location struct {
	Country string `json:"country"`
}

type action struct {
	Type         string `json:"type"`
	Direction    string `json:"direction,omitempty"`
	Distance     int    `json:"distance,omitempty"`
	Milliseconds int    `json:"milliseconds,omitempty"`
}

type jsonOptions struct {
	Prompt string `json:"prompt"`
	Schema schema `json:"schema"`
}

type schema struct {
	Type       string              `json:"type"`
	Properties map[string]property `json:"properties"`
	Required   []string            `json:"required"`
}

type property struct {
	Type string `json:"type"`
}

type scrapeResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Data    *scrapeData `json:"data"`
}

type scrapeData struct {
	JSON     productJSON  `json:"json"`
	Metadata pageMetadata `json:"metadata"`
}

// productJSON — извлечённые поля; price остаётся сырым, сервис может вернуть строку или null.
type productJSON struct {
	Title    string          `json:"title"`
	Price    json.RawMessage `json:"price"`
	Currency string          `json:"currency"`
	ImageURL string          `json:"image_url"`
}

type pageMetadata struct {
	Title string `json:"title"`
}

// transportRaw — то, что сохраняется в журнал при не-2xx ответе.
type transportRaw struct {
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
}

func newScrapeRequest(url, country string) *scrapeRequest {
	return &scrapeRequest{
		URL:      url,
		Formats:  []string{"json"},
		Location: location{Country: country},
		Actions: []action{
			{Type: "scroll", Direction: "down", Distance: scrollDistance},
			{Type: "wait", Milliseconds: waitMillis},
		},
		JSONOptions: jsonOptions{
			Prompt: extractionPrompt,
			Schema: schema{
				Type: "object",
				Properties: map[string]property{
					"title":     {Type: "string"},
					"price":     {Type: "number"},
					"currency":  {Type: "string"},
					"image_url": {Type: "string"},
				},
				Required: []string{"title", "price"},
			},
		},
	}
}
