package rest

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/port/rest/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Products *ProductHandler
	Admin    *AdminHandler
	Checkout *CheckoutHandler
	Auth     *AuthHandler
	Health   *HealthHandler
}

func NewRouter(h Handlers, authn middleware.Authenticator, metricsManager *metrics.MetricsManager, log logger.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	if metricsManager != nil {
		r.Use(middleware.Metrics(metricsManager))
	}
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, log, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, log, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	r.Get("/", h.Health.HandleRoot)
	r.Get("/health", h.Health.HandleHealth)

	SetupProductRoutes(r, h.Products)
	SetupCheckoutRoutes(r, h.Checkout, authn, log)
	SetupAuthRoutes(r, h.Auth, authn, log)
	SetupAdminRoutes(r, h.Admin, authn, log)
	return r
}

func SetupProductRoutes(r chi.Router, h *ProductHandler) {
	r.Get("/products", h.HandleListProducts)
	r.Get("/products/{id}", h.HandleGetProduct)
}

func SetupCheckoutRoutes(r chi.Router, h *CheckoutHandler, authn middleware.Authenticator, log logger.Logger) {
	r.With(middleware.OptionalAuth(authn, log)).Post("/checkout", h.HandleCheckout)
}

func SetupAuthRoutes(r chi.Router, h *AuthHandler, authn middleware.Authenticator, log logger.Logger) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.HandleSignup)
		r.Post("/login", h.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(authn, log))
			r.Post("/logout", h.HandleLogout)
			r.Get("/me", h.HandleMe)
		})
	})
}

func SetupAdminRoutes(r chi.Router, h *AdminHandler, authn middleware.Authenticator, log logger.Logger) {
	r.Route("/admin/products", func(r chi.Router) {
		r.Use(middleware.RequireAuth(authn, log))
		r.Use(middleware.RequireRole(entity.RoleAdmin))

		r.Post("/", h.HandleCreateProduct)
		r.Patch("/{id}", h.HandleUpdateProduct)
		r.Delete("/{id}", h.HandleDeleteProduct)
		r.Post("/{id}/images", h.HandleUploadImage)
	})
}
