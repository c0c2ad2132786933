package routers

import (
	"billsync-service/internal/app/delivery/http/controllers"
	"billsync-service/internal/pkg/constvars"
	"fmt"

	"github.com/go-chi/chi/v5"
)

func attachConsommationRoutes(router chi.Router, consommationController *controllers.ConsommationController) {
	router.Post("/", consommationController.Create)
	router.Get(fmt.Sprintf("/{%s}/rates", constvars.URLParamConsommationID), consommationController.ResolveRates)
	router.Post("/payment-status", consommationController.PollPaymentStatus)
}
