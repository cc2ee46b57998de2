package e

import "fmt"

var (
	// Внутренние ошибки
	ErrPersistence          = fmt.Errorf("persistence failure")
	ErrMissingAPIKey        = fmt.Errorf("extraction service api key is not configured")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrTransactionNotFound  = fmt.Errorf("transaction not found in context")

	// Ошибки сервиса извлечения данных
	ErrExtraction          = fmt.Errorf("extraction failed")
	ErrExtractionTransport = fmt.Errorf("extraction service transport failure")
	ErrExtractionReported  = fmt.Errorf("extraction service reported failure")

	// 400 Bad Request
	ErrStatusBadRequest          = fmt.Errorf("bad request")
	ErrInvalidURL                = fmt.Errorf("url must be an absolute http(s) url")
	ErrInvalidPrice              = fmt.Errorf("invalid price")
	ErrPricePrecision            = fmt.Errorf("price must have at most 2 decimal places")
	ErrTargetPriceMustBePositive = fmt.Errorf("target price must be positive")
	ErrFullNameRequired          = fmt.Errorf("full name is required")
	ErrMissingFields             = fmt.Errorf("missing required fields")
	ErrInvalidID                 = fmt.Errorf("invalid id")
	ErrUnknownTable              = fmt.Errorf("unknown table")

	// 401 Unauthorized
	ErrUnauthorized = fmt.Errorf("user is not authenticated")

	// 404 Not Found
	ErrProductNotFound   = fmt.Errorf("product not found")
	ErrAlertNotFound     = fmt.Errorf("alert not found")
	ErrScrapeLogNotFound = fmt.Errorf("scrape log not found")
	ErrSiteURLNotSet     = fmt.Errorf("site url is not configured")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
