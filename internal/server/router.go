package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"vitrine/internal/config"
	"vitrine/internal/image"
	"vitrine/internal/middleware"
	ordercontroller "vitrine/internal/order/controller"
)

// NewRouter assembles the HTTP surface: the public order-submission endpoint,
// the gate-protected admin endpoints, the health probe and static serving of
// the image directory.
func NewRouter(
	cfg *config.Config,
	orderCtrl *ordercontroller.OrderController,
	imageCtrl *image.Controller,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.Server.CORSOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.SecretHeader},
	}))
	r.Use(httprate.LimitByIP(cfg.RateLimit.RequestLimit, cfg.RateLimit.WindowLength))

	gate := middleware.AccessGate(cfg.Auth.OrderSecret, logger)

	r.With(gate).Post("/api/order", orderCtrl.SubmitOrder)

	// Admin routes get their own, tighter rate-limit bucket on top of the
	// general one.
	r.Route("/admin", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimit.AdminLimit, cfg.RateLimit.WindowLength))
		r.Use(gate)

		r.Get("/orders", orderCtrl.ListOrders)
		r.Post("/orders/{id}/process", orderCtrl.ToggleProcessed)
		r.Delete("/orders/{id}", orderCtrl.DeleteOrder)

		r.Get("/images", imageCtrl.ListImages)
		r.Post("/images/upload", imageCtrl.UploadImage)
		r.Delete("/images/{filename}", imageCtrl.DeleteImage)
	})

	r.Get("/health", NewHealthHandler(cfg.Server.Environment).Health)

	publicPath := strings.TrimSuffix(cfg.Images.PublicPath, "/")
	fileServer := http.StripPrefix(publicPath+"/", http.FileServer(http.Dir(cfg.Images.UploadDir)))
	r.Get(publicPath+"/*", fileServer.ServeHTTP)

	return r
}
