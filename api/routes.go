package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/withgossing/bank-app/internal/auth"
	"github.com/withgossing/bank-app/internal/handlers/v1/account"
	"github.com/withgossing/bank-app/internal/handlers/v1/product"
	"github.com/withgossing/bank-app/internal/handlers/v1/status"
	"github.com/withgossing/bank-app/internal/handlers/v1/transaction"
	"github.com/withgossing/bank-app/internal/logging"
	"github.com/withgossing/bank-app/internal/service"
	"github.com/withgossing/bank-app/internal/storage"
)

type Rest struct {
	Logger    *logrus.Logger
	Port      int
	Storage   storage.Storage
	Service   *service.Service
	JWTSecret string
}

// ledger joins the write and read paths for handlers that need both.
type ledger struct {
	*service.AccountAuthority
	*service.LedgerQuery
}

// Handler builds the HTTP routes without starting a listener.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	config := huma.DefaultConfig("Bank Ledger API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		auth.SecurityScheme: {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humago.New(mux, config)
	api.UseMiddleware(logging.Middleware(r.Logger), auth.NewMiddleware(api, r.JWTSecret))

	svc := &ledger{AccountAuthority: r.Service.Authority, LedgerQuery: r.Service.Query}

	account.NewCreateAccountHandler(svc).Register(api)
	account.NewListAccountsHandler(svc).Register(api)
	account.NewGetAccountHandler(svc).Register(api)
	account.NewChangeStatusHandler(svc).Register(api)
	account.NewReconcileHandler(svc).Register(api)

	transaction.NewCreateTransactionHandler(svc).Register(api)
	transaction.NewListTransactionsHandler(svc).Register(api)

	product.NewListProductsHandler(r.Service.Products).Register(api)
	product.NewProductProjectionHandler(r.Service.Products).Register(api)
	product.NewProjectInterestHandler(r.Service.Products).Register(api)

	return mux
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) {
	server := http.Server{
		Addr:              ":" + strconv.Itoa(r.Port),
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
