package http

import (
	"net/http"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// addProduct
//
//	@Summary		Добавление товара
//	@Description	Создаёт товар-заглушку и запускает первый сбор данных в фоне
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string				true	"ID пользователя"
//	@Param			request		body		addProductRequest	true	"Ссылка на товар"
//	@Success		202			{object}	productResponse
//	@Failure		400			{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		401			{object}	ErrorResponse
//	@Router			/products [post]
func (p *ProductHandler) addProduct(w http.ResponseWriter, r *http.Request) {
	var req addProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		p.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.AddProduct(r.Context(), ownerFromCtx(r.Context()), req.URL)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusAccepted, toProductResponse(product))
}

// listProducts
//
//	@Summary	Список товаров пользователя
//	@Tags		products
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"ID пользователя"
//	@Success	200			{array}		productResponse
//	@Failure	401			{object}	ErrorResponse
//	@Router		/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.ListProducts(r.Context(), ownerFromCtx(r.Context()))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductsResponse(products))
}

// getProduct
//
//	@Summary	Товар по ID
//	@Tags		products
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"ID пользователя"
//	@Param		id			path		string	true	"ID товара"
//	@Success	200			{object}	productResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.GetProduct(r.Context(), ownerFromCtx(r.Context()), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary	Удаление товара вместе с историей, алертами и журналом
//	@Tags		products
//	@Param		X-User-ID	header	string	true	"ID пользователя"
//	@Param		id			path	string	true	"ID товара"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.productUsecase.DeleteProduct(r.Context(), ownerFromCtx(r.Context()), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// refreshProduct
//
//	@Summary		Ручное обновление цены
//	@Description	Синхронно запускает сбор данных; параллельный запрос того же товара получает тот же результат
//	@Tags			products
//	@Produce		json
//	@Param			X-User-ID	header		string	true	"ID пользователя"
//	@Param			id			path		string	true	"ID товара"
//	@Success		200			{object}	orchestratorResultResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse	"Ошибка сервиса извлечения"
//	@Router			/products/{id}/refresh [post]
func (p *ProductHandler) refreshProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := p.productUsecase.RefreshProduct(r.Context(), ownerFromCtx(r.Context()), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrchestratorResultResponse(result))
}

// getHistory
//
//	@Summary	История цены товара по возрастанию времени
//	@Tags		products
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"ID пользователя"
//	@Param		id			path		string	true	"ID товара"
//	@Success	200			{array}		observationResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/products/{id}/history [get]
func (p *ProductHandler) getHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	history, err := p.productUsecase.GetHistory(r.Context(), ownerFromCtx(r.Context()), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toHistoryResponse(history))
}

// listScrapeLogs
//
//	@Summary	Журнал запусков сбора данных
//	@Tags		scrape-logs
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"ID пользователя"
//	@Param		id			path		string	true	"ID товара"
//	@Success	200			{array}		scrapeLogResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/products/{id}/logs [get]
func (p *ProductHandler) listScrapeLogs(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	logs, err := p.productUsecase.ListScrapeLogs(r.Context(), ownerFromCtx(r.Context()), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toScrapeLogsResponse(logs))
}

// getScrapeLog
//
//	@Summary	Запись журнала вместе с сырым ответом сервиса
//	@Tags		scrape-logs
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"ID пользователя"
//	@Param		id			path		string	true	"ID товара"
//	@Param		logID		path		string	true	"ID записи журнала"
//	@Success	200			{object}	scrapeLogResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/products/{id}/logs/{logID} [get]
func (p *ProductHandler) getScrapeLog(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	logID, err := uuidParam(r, "logID")
	if err != nil {
		WriteError(w, err)
		return
	}

	entry, err := p.productUsecase.GetScrapeLog(r.Context(), ownerFromCtx(r.Context()), id, logID)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toScrapeLogResponse(entry, true))
}
