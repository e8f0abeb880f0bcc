package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelierhq/storefront-backend/api/controllers"
	"github.com/atelierhq/storefront-backend/api/middleware"
	"github.com/atelierhq/storefront-backend/internal/cart"
	"github.com/atelierhq/storefront-backend/internal/catalog"
	"github.com/atelierhq/storefront-backend/internal/feedback"
	"github.com/atelierhq/storefront-backend/internal/identity"
	"github.com/atelierhq/storefront-backend/internal/orders"
	"github.com/atelierhq/storefront-backend/pkg/config"
	"github.com/atelierhq/storefront-backend/pkg/db"
	"github.com/atelierhq/storefront-backend/pkg/logger"
	"github.com/atelierhq/storefront-backend/pkg/metrics"
	"github.com/atelierhq/storefront-backend/pkg/session"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	sessions session.Store,
	httpMetrics *metrics.HTTP,
	catalogService *catalog.Service,
	identityService *identity.Service,
	cartService *cart.Service,
	ordersService *orders.Service,
	feedbackService *feedback.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
		middleware.ResolveSession(cfg.Session, sessions, logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})
	r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", controllers.ListCategories(catalogService, logg))
		r.Get("/products", controllers.ListProducts(catalogService, logg))
		r.Get("/products/{productId}", controllers.GetProduct(catalogService, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.Register(identityService, cfg, logg))
			r.Post("/login", controllers.Login(identityService, cfg, logg))
			r.Post("/logout", controllers.Logout(identityService, cfg, logg))
		})
		r.Get("/user", controllers.CurrentUser(identityService, logg))

		// The cart read is open so the storefront can render an empty
		// cart before login; everything that mutates requires a session.
		r.Get("/cart", controllers.GetCart(cartService, logg))
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(logg))
			r.Post("/cart/add", controllers.AddToCart(cartService, logg))
			r.Put("/cart/update/{itemId}", controllers.UpdateCartItem(cartService, logg))
			r.Delete("/cart/remove/{itemId}", controllers.RemoveCartItem(cartService, logg))
			r.Post("/cart/clear", controllers.ClearCart(cartService, logg))

			r.Post("/orders", controllers.CreateOrder(ordersService, logg))
			r.Get("/orders", controllers.ListOrders(ordersService, logg))

			r.Post("/reviews", controllers.SubmitReview(feedbackService, logg))
		})

		r.Post("/contact", controllers.SubmitContact(feedbackService, logg))
	})

	// Root serves the static storefront shell.
	fileServer := http.FileServer(http.Dir(cfg.App.StaticDir))
	r.Get("/", fileServer.ServeHTTP)
	r.Get("/static/*", http.StripPrefix("/static/", fileServer).ServeHTTP)

	return r
}
