package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
)

const defaultKeepAlive = 25 * time.Second

type EventsHandler struct {
	changeUsecase usecase.ChangeUC
	keepAlive     time.Duration
	logger        logger.Logger
	stop          chan struct{}
	stopOnce      sync.Once
}

func NewEventsHandler(changeUsecase usecase.ChangeUC, logger logger.Logger) *EventsHandler {
	return &EventsHandler{
		changeUsecase: changeUsecase,
		keepAlive:     defaultKeepAlive,
		logger:        logger,
		stop:          make(chan struct{}),
	}
}

// CloseStreams завершает все открытые потоки; Shutdown сервера их не прерывает.
func (h *EventsHandler) CloseStreams() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// stream
//
//	@Summary		Поток изменений пользователя (SSE)
//	@Description	Каждое событие приходит как `event: <table>` с JSON-телом; подписка закрывается вместе с соединением
//	@Tags			events
//	@Produce		text/event-stream
//	@Param			X-User-ID	header		string	true	"ID пользователя"
//	@Param			table		query		string	false	"Фильтр по таблице"	Enums(products, price_history, alerts, scrape_logs, profiles)
//	@Failure		400			{object}	ErrorResponse
//	@Router			/events [get]
func (h *EventsHandler) stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := ownerFromCtx(ctx)

	sub, err := h.changeUsecase.Subscribe(ctx, owner, r.URL.Query().Get("table"))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}
	defer sub.Close()

	rc := http.NewResponseController(w)
	// поток живёт дольше WriteTimeout сервера
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.logger.Errorf(err, "streaming is not supported")
		return
	}

	h.logger.Debugf("events stream opened for %s", owner)
	defer h.logger.Debugf("events stream closed for %s", owner)

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.stop:
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.logger.Warnf("failed to marshal change event: %v", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Table, data); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
