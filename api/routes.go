package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/vending-server/internal/handlers/v1/checkout"
	"github.com/carson-networks/vending-server/internal/handlers/v1/money"
	"github.com/carson-networks/vending-server/internal/handlers/v1/product"
	"github.com/carson-networks/vending-server/internal/handlers/v1/status"
	"github.com/carson-networks/vending-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/vending-server/internal/logging"
	"github.com/carson-networks/vending-server/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Database interface {
		Ping(ctx context.Context) error
	}
	Service *service.Service
}

// Router builds the mux with the status endpoint and every v1 operation.
func (r *Rest) Router() (*http.ServeMux, huma.API) {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Database)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Vending Server", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	svc := r.Service
	f := svc.Currency

	money.NewDenominationsHandler(f).Register(api)
	money.NewInsertMoneyHandler(f).Register(api)

	product.NewListProductsHandler(svc.Catalog, f).Register(api)
	product.NewGetProductHandler(svc.Catalog, f).Register(api)
	product.NewCreateProductHandler(svc.Catalog, f).Register(api)
	product.NewUpdateProductHandler(svc.Catalog, f).Register(api)
	product.NewDeleteProductHandler(svc.Catalog).Register(api)

	checkout.NewEvaluatePurchaseHandler(svc.Purchase, f).Register(api)
	checkout.NewConfirmPurchaseHandler(svc.Purchase, f).Register(api)
	checkout.NewCancelPurchaseHandler(svc.Purchase, f).Register(api)

	transaction.NewListTransactionsHandler(svc.Ledger, f).Register(api)
	transaction.NewSummaryHandler(svc.Ledger, f).Register(api)
	transaction.NewClearTransactionsHandler(svc.Ledger).Register(api)

	return mux, api
}

// Serve listens until ctx is cancelled and then shuts the server down gracefully.
func (r *Rest) Serve(ctx context.Context) error {
	mux, _ := r.Router()

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
	return nil
}
