package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"stockroom/internal/catalog"
	ledgercontroller "stockroom/internal/ledger/controller"
)

func NewRouter(catalogCtrl *catalog.Controller, stockCtrl *ledgercontroller.StockController, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", catalogCtrl.HandleCreate)
			r.Get("/", catalogCtrl.HandleList)
			r.Get("/low-stock", catalogCtrl.HandleLowStock)
			r.Get("/{productId}", catalogCtrl.HandleGet)
			r.Put("/{productId}", catalogCtrl.HandleUpdate)
			r.Delete("/{productId}", catalogCtrl.HandleDelete)
		})

		r.Route("/stock", func(r chi.Router) {
			r.Post("/receipts", stockCtrl.HandleReceive)
			r.Get("/receipts", stockCtrl.HandleListReceipts)
			r.Post("/issuances", stockCtrl.HandleIssue)
			r.Get("/issuances", stockCtrl.HandleListIssuances)
			r.Post("/adjustments", stockCtrl.HandleAdjust)
		})
	})

	return r
}
