package e

import "fmt"

// ExtractionKind различает причину отказа сервиса извлечения данных.
type ExtractionKind string

const (
	ExtractionTransport ExtractionKind = "transport"
	ExtractionReported  ExtractionKind = "reported"
)

// ExtractionError описывает неудачный вызов сервиса извлечения данных.
// Сопоставляется с ErrExtraction и с sentinel-ошибкой своего вида через errors.Is.
type ExtractionError struct {
	Kind       ExtractionKind
	StatusCode int    // HTTP-статус ответа, 0 если ответа не было
	Body       string // начало тела ответа (для логов)
	Message    string
	Raw        []byte // ответ сервиса для журнала запусков
	Err        error
}

func (x *ExtractionError) Error() string {
	switch {
	case x.StatusCode != 0 && x.Kind == ExtractionTransport:
		return fmt.Sprintf("extraction service http %d: %s", x.StatusCode, x.Message)
	case x.Err != nil:
		return fmt.Sprintf("extraction service %s failure: %s: %v", x.Kind, x.Message, x.Err)
	default:
		return fmt.Sprintf("extraction service %s failure: %s", x.Kind, x.Message)
	}
}

func (x *ExtractionError) Unwrap() []error {
	errs := []error{ErrExtraction}
	switch x.Kind {
	case ExtractionTransport:
		errs = append(errs, ErrExtractionTransport)
	case ExtractionReported:
		errs = append(errs, ErrExtractionReported)
	}

	if x.Err != nil {
		errs = append(errs, x.Err)
	}

	return errs
}

// NewTransportError создаёт ошибку сетевого уровня или не-2xx ответа.
func NewTransportError(statusCode int, body string, err error) *ExtractionError {
	msg := body
	if msg == "" {
		msg = "request failed"
	}

	return &ExtractionError{
		Kind:       ExtractionTransport,
		StatusCode: statusCode,
		Body:       body,
		Message:    msg,
		Err:        err,
	}
}

// NewReportedError создаёт ошибку, о которой сообщил сам сервис (success=false).
func NewReportedError(message string) *ExtractionError {
	if message == "" {
		message = "unknown extraction service error"
	}

	return &ExtractionError{
		Kind:    ExtractionReported,
		Message: message,
	}
}
