package http

import (
	"net/http"

	_ "github.com/Eswarchinthakayala-webdesign/Monvix/docs" // Импорт сгенерированных файлов
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/cfg"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	events *EventsHandler
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

type Usecases struct {
	Product usecase.ProductUC
	Alert   usecase.AlertUC
	Profile usecase.ProfileUC
	Change  usecase.ChangeUC
}

func (r *Router) Init(uc Usecases, site *cfg.SiteCfg) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.Recoverer)
	r.router.Use(requestLogger(r.logger))

	r.router.Get("/healthz", healthz)
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON
	))

	prHandler := NewProductHandler(uc.Product, r.logger)
	alHandler := NewAlertHandler(uc.Alert, r.logger)
	pfHandler := NewProfileHandler(uc.Profile, site, r.logger)
	r.events = NewEventsHandler(uc.Change, r.logger)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/auth/callback-url", pfHandler.callbackURL)

		v1.Group(func(owned chi.Router) {
			owned.Use(requireOwner)
			registerProductRoutes(owned, prHandler, alHandler)
			registerAlertRoutes(owned, alHandler)
			registerProfileRoutes(owned, pfHandler)
			owned.Get("/events", r.events.stream)
		})
	})
}

// CloseStreams закрывает SSE-потоки; вызывается при остановке сервера.
func (r *Router) CloseStreams() {
	if r.events != nil {
		r.events.CloseStreams()
	}
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler, alHandler *AlertHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", prHandler.addProduct)
		pr.Get("/", prHandler.listProducts)

		pr.Route("/{id}", func(one chi.Router) {
			one.Get("/", prHandler.getProduct)
			one.Delete("/", prHandler.deleteProduct)
			one.Post("/refresh", prHandler.refreshProduct)
			one.Get("/history", prHandler.getHistory)
			one.Get("/logs", prHandler.listScrapeLogs)
			one.Get("/logs/{logID}", prHandler.getScrapeLog)
			one.Get("/alert", alHandler.getAlert)
			one.Put("/alert", alHandler.setTargetPrice)
		})
	})
}

func registerAlertRoutes(router chi.Router, alHandler *AlertHandler) {
	router.Patch("/alerts/{id}", alHandler.toggleAlert)
	router.Post("/alerts/{id}/dismiss", alHandler.dismissAlert)
	router.Get("/notifications", alHandler.listNotifications)
	router.Get("/notifications/count", alHandler.unreadCount)
}

func registerProfileRoutes(router chi.Router, pfHandler *ProfileHandler) {
	router.Get("/profile", pfHandler.getProfile)
	router.Patch("/profile", pfHandler.updateProfile)
}

// healthz
//
//	@Summary	Проверка живости
//	@Tags		system
//	@Success	200
//	@Router		/healthz [get]
func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
