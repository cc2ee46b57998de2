package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxJSONBody = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse сопоставляет ошибку со статусом и текстом для клиента.
func ToHTTPResponse(err error) (int, string) {
	var xerr *e.ExtractionError

	switch {
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, e.ErrUnauthorized.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrAlertNotFound):
		return http.StatusNotFound, e.ErrAlertNotFound.Error()
	case errors.Is(err, e.ErrScrapeLogNotFound):
		return http.StatusNotFound, e.ErrScrapeLogNotFound.Error()
	case errors.Is(err, e.ErrSiteURLNotSet):
		return http.StatusNotFound, e.ErrSiteURLNotSet.Error()
	case errors.Is(err, e.ErrInvalidURL):
		return http.StatusBadRequest, e.ErrInvalidURL.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrTargetPriceMustBePositive):
		return http.StatusBadRequest, e.ErrTargetPriceMustBePositive.Error()
	case errors.Is(err, e.ErrFullNameRequired):
		return http.StatusBadRequest, e.ErrFullNameRequired.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrInvalidID):
		return http.StatusBadRequest, e.ErrInvalidID.Error()
	case errors.Is(err, e.ErrUnknownTable):
		return http.StatusBadRequest, e.ErrUnknownTable.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.As(err, &xerr):
		return http.StatusBadGateway, xerr.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// decodeJSON читает тело запроса не больше maxJSONBody и запрещает неизвестные поля.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", e.ErrStatusBadRequest, err)
	}

	return nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", name, e.ErrInvalidID)
	}

	return id, nil
}

// parsePrice разбирает цену вида "19.99" или "20".
// Отклоняет пустую строку, отрицательные значения, больше 2 знаков после точки
// и значения, не помещающиеся в NUMERIC(12,2).
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, e.ErrMissingFields
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, e.ErrInvalidPrice
	}

	if d.IsNegative() {
		return decimal.Zero, e.ErrInvalidPrice
	}

	maxPrice := decimal.New(1, 10) // 10^10, предел NUMERIC(12,2)
	if d.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return decimal.Zero, e.ErrPricePrecision
	}

	return d, nil
}

// formatPrice печатает цену с двумя знаками после точки.
func formatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}
