package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// UserIDHeader выставляет внешний auth-прокси после аутентификации.
const UserIDHeader = "X-User-ID"

type ownerKey struct{}

// requireOwner кладёт id пользователя из заголовка в контекст, иначе отвечает 401.
func requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := uuid.Parse(r.Header.Get(UserIDHeader))
		if err != nil || ownerID == uuid.Nil {
			WriteError(w, e.ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerKey{}, ownerID)))
	})
}

// ownerFromCtx возвращает uuid.Nil, если маршрут не прошёл requireOwner.
func ownerFromCtx(ctx context.Context) uuid.UUID {
	ownerID, _ := ctx.Value(ownerKey{}).(uuid.UUID)
	return ownerID
}

// requestLogger пишет одну строку на запрос.
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Debugf("%s %s -> %d (%v) request_id=%s",
				r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
		})
	}
}
