package routers

import (
	"billsync-service/internal/app/config"
	"billsync-service/internal/app/delivery/http/controllers"
	"billsync-service/internal/app/delivery/http/middlewares"
	"billsync-service/internal/pkg/constvars"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func SetupRoutes(
	router *chi.Mux,
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	consommationController *controllers.ConsommationController,
	globalBillController *controllers.GlobalBillController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID, constvars.HeaderRetryAfter},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.IPRateLimit())
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(logger))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/consommation", func(r chi.Router) {
				attachConsommationRoutes(r, consommationController)
			})

			r.Route("/globalBill", func(r chi.Router) {
				attachGlobalBillRoutes(r, globalBillController)
			})
		})
	})
}
