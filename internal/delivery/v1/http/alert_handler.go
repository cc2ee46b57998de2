package http

import (
	"net/http"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
)

type AlertHandler struct {
	alertUsecase usecase.AlertUC
	logger       logger.Logger
}

func NewAlertHandler(alertUsecase usecase.AlertUC, logger logger.Logger) *AlertHandler {
	return &AlertHandler{alertUsecase: alertUsecase, logger: logger}
}

// getAlert
//
//	@Summary	Алерт товара
//	@Tags		alerts
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"ID пользователя"
//	@Param		id			path		string	true	"ID товара"
//	@Success	200			{object}	alertResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/products/{id}/alert [get]
func (a *AlertHandler) getAlert(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	alert, err := a.alertUsecase.GetAlert(r.Context(), ownerFromCtx(r.Context()), productID)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toAlertResponse(alert))
}

// setTargetPrice
//
//	@Summary		Установка порога цены
//	@Description	Создаёт или обновляет единственный алерт товара; состояние срабатывания не меняется
//	@Tags			alerts
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string					true	"ID пользователя"
//	@Param			id			path		string					true	"ID товара"
//	@Param			request		body		setTargetPriceRequest	true	"Порог"
//	@Success		200			{object}	alertResponse
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		404			{object}	ErrorResponse
//	@Router			/products/{id}/alert [put]
func (a *AlertHandler) setTargetPrice(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req setTargetPriceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	target, err := parsePrice(req.TargetPrice)
	if err != nil {
		a.logger.Warnf("%d %s: %q", http.StatusBadRequest, err.Error(), req.TargetPrice)
		WriteError(w, err)
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	alert, err := a.alertUsecase.SetTargetPrice(r.Context(), ownerFromCtx(r.Context()),
		usecase.NewSetTargetPriceReq(productID, target, enabled))
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toAlertResponse(alert))
}

// toggleAlert
//
//	@Summary	Включение и выключение алерта
//	@Tags		alerts
//	@Accept		json
//	@Produce	json
//	@Param		X-User-ID	header		string				true	"ID пользователя"
//	@Param		id			path		string				true	"ID алерта"
//	@Param		request		body		toggleAlertRequest	true	"Состояние"
//	@Success	200			{object}	alertResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/alerts/{id} [patch]
func (a *AlertHandler) toggleAlert(w http.ResponseWriter, r *http.Request) {
	alertID, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req toggleAlertRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Enabled == nil {
		WriteError(w, e.Wrap("enabled", e.ErrMissingFields))
		return
	}

	alert, err := a.alertUsecase.Toggle(r.Context(), ownerFromCtx(r.Context()), alertID, *req.Enabled)
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toAlertResponse(alert))
}

// dismissAlert
//
//	@Summary	Сброс сработавшего алерта
//	@Tags		alerts
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"ID пользователя"
//	@Param		id			path		string	true	"ID алерта"
//	@Success	200			{object}	alertResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/alerts/{id}/dismiss [post]
func (a *AlertHandler) dismissAlert(w http.ResponseWriter, r *http.Request) {
	alertID, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	alert, err := a.alertUsecase.Dismiss(r.Context(), ownerFromCtx(r.Context()), alertID)
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toAlertResponse(alert))
}

// listNotifications
//
//	@Summary	Сработавшие алерты
//	@Tags		notifications
//	@Produce	json
//	@Param		X-User-ID	header	string	true	"ID пользователя"
//	@Success	200			{array}	notificationResponse
//	@Router		/notifications [get]
func (a *AlertHandler) listNotifications(w http.ResponseWriter, r *http.Request) {
	items, err := a.alertUsecase.ListNotifications(r.Context(), ownerFromCtx(r.Context()))
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toNotificationsResponse(items))
}

// unreadCount
//
//	@Summary	Количество сработавших алертов
//	@Tags		notifications
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"ID пользователя"
//	@Success	200			{object}	countResponse
//	@Router		/notifications/count [get]
func (a *AlertHandler) unreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := a.alertUsecase.UnreadCount(r.Context(), ownerFromCtx(r.Context()))
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, countResponse{Count: count})
}
