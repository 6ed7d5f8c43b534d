package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/velora-storefront/api/controllers"
	cartcontrollers "github.com/angelmondragon/velora-storefront/api/controllers/cart"
	"github.com/angelmondragon/velora-storefront/api/middleware"
	"github.com/angelmondragon/velora-storefront/internal/cart"
	"github.com/angelmondragon/velora-storefront/internal/catalog"
	"github.com/angelmondragon/velora-storefront/internal/layout"
	"github.com/angelmondragon/velora-storefront/internal/render"
	"github.com/angelmondragon/velora-storefront/pkg/config"
	"github.com/angelmondragon/velora-storefront/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	pingers map[string]controllers.Pinger,
	gatherer prometheus.Gatherer,
	cartService cart.Service,
	toasts controllers.ToastCenter,
	renderer *render.Renderer,
	extractor *catalog.Extractor,
	headerController *layout.Controller,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	if cfg.FeatureFlags.Metrics && gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.CartFetch(cartService, renderer, logg))
				r.Get("/badge", cartcontrollers.CartBadge(cartService, logg))
				r.Post("/items", cartcontrollers.CartAddItem(cartService, renderer, logg))
				r.Post("/items/from-card", cartcontrollers.CartAddFromCard(cartService, extractor, renderer, logg))
				r.Route("/items/{itemId}", func(r chi.Router) {
					r.Patch("/", cartcontrollers.CartUpdateQuantity(cartService, renderer, logg))
					r.Delete("/", cartcontrollers.CartRemoveItem(cartService, renderer, logg))
					r.Post("/increase", cartcontrollers.CartIncrease(cartService, renderer, logg))
					r.Post("/decrease", cartcontrollers.CartDecrease(cartService, renderer, logg))
					r.Post("/save-for-later", cartcontrollers.CartSaveForLater(cartService, renderer, logg))
				})
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistList(cartService, logg))
				r.Post("/toggle", controllers.WishlistToggle(cartService, extractor, logg))
				r.Post("/buttons", controllers.WishlistButtons(cartService, logg))
			})

			r.Post("/promo", controllers.PromoApply(toasts, logg))
			r.Post("/checkout", controllers.Checkout(cartService, toasts, logg))
			r.Get("/notification", controllers.NotificationCurrent(toasts, logg))
			r.Post("/ui/header", controllers.HeaderUpdate(headerController, logg))
		})

		r.Get("/cart", controllers.CartPage(cartService, renderer, logg))
		r.Route("/fragments", func(r chi.Router) {
			r.Get("/badge", controllers.BadgeFragment(cartService, renderer, logg))
			r.Get("/notification", controllers.NotificationFragment(toasts, renderer, logg))
			r.Get("/header", controllers.HeaderFragment(headerController, renderer, logg))
			r.Get("/wishlist-buttons", controllers.WishlistButtonsFragment(cartService, renderer, logg))
		})
	})

	return r
}
