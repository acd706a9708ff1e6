package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"jewelstore/internal/api"
	"jewelstore/internal/api/middleware"
	"jewelstore/internal/auth"
)

func (app *App) initHTTP(svcs services) error {
	authLimiter, err := middleware.NewIPLimiter(app.cfg.RateLimit.Auth)
	if err != nil {
		return err
	}
	authenticate := middleware.Authenticate(svcs.auth, app.logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLoggingMiddleware(app.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/api/rates", api.HandleGetRates(svcs.rates))
	r.Get("/healthz", api.HandleHealthz())
	r.Get("/readyz", api.HandleReadyz(app.db, app.rdbCache, app.rdbAsynq))

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(authLimiter, app.logger))
			r.Post("/register", api.HandleRegister(svcs.auth))
			r.Post("/login", api.HandleLogin(svcs.auth))
			r.Post("/admin/login", api.HandleAdminLogin(svcs.auth))
		})
		r.With(authenticate).Post("/logout", api.HandleLogout(svcs.auth))
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(authenticate, middleware.RequireRole(auth.RoleUser))
		r.Get("/dashboard", api.HandleUserDashboard(svcs.rates, svcs.catalog))
		r.Get("/products", api.HandleListInStock(svcs.catalog))
		r.Get("/orders", api.HandleListMyOrders(svcs.orders))
		r.Post("/orders", api.HandlePlaceOrder(svcs.orders))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticate, middleware.RequireRole(auth.RoleAdmin))
		r.Get("/dashboard", api.HandleAdminDashboard(svcs.admin))
		r.Get("/rates", api.HandleRateHistory(svcs.admin))
		r.Post("/rates/refresh", api.HandleRefreshRates(svcs.rates))
		r.Get("/products", api.HandleListProducts(svcs.catalog))
		r.Post("/products", api.HandleCreateProduct(svcs.catalog))
		r.Get("/products/{id}", api.HandleGetProduct(svcs.catalog))
		r.Put("/products/{id}", api.HandleUpdateProduct(svcs.catalog))
		r.Delete("/products/{id}", api.HandleDeleteProduct(svcs.catalog))
		r.Get("/orders", api.HandleListAllOrders(svcs.orders))
		r.Put("/orders/{id}/status", api.HandleUpdateOrderStatus(svcs.orders))
	})

	if app.monitor != nil {
		r.With(authenticate, middleware.RequireRole(auth.RoleAdmin)).Handle(app.monitor.RootPath()+"/*", app.monitor)
	}

	if app.cfg.Server.ServeSwagger {
		r.Get("/swagger/*", api.SwaggerUIHandler())
		r.Get("/openapi.json", api.OpenAPISpecHandler())
	}

	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return nil
}
