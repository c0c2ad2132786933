package routers

import (
	"billsync-service/internal/app/delivery/http/controllers"
	"billsync-service/internal/pkg/constvars"
	"fmt"

	"github.com/go-chi/chi/v5"
)

func attachGlobalBillRoutes(router chi.Router, globalBillController *controllers.GlobalBillController) {
	router.Get(fmt.Sprintf("/{%s}/totals", constvars.URLParamGlobalBillID), globalBillController.Totals)
	router.Get(fmt.Sprintf("/{%s}/consommations", constvars.URLParamGlobalBillID), globalBillController.ListConsommations)
}
