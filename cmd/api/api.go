package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/docs"
	"github.com/TejashHub/FoodDelivery-sub001/internal/queue"
	"github.com/TejashHub/FoodDelivery-sub001/internal/ratelimiter"
	"github.com/TejashHub/FoodDelivery-sub001/internal/service"
	"github.com/TejashHub/FoodDelivery-sub001/internal/tracing"
	"github.com/TejashHub/FoodDelivery-sub001/internal/worker"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// storage is the part of the database handle the HTTP layer needs.
type storage interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type application struct {
	config             config
	logger             *zap.SugaredLogger
	rateLimiter        ratelimiter.Limiter
	storage            storage
	broker             queue.Broker
	couponService      *service.CouponService
	restaurantService  *service.RestaurantService
	orderWorker        *worker.OrderFinalizedWorker
	mediaCleanupWorker *worker.MediaCleanupWorker
	shutdownTracing    func(context.Context) error
}

type config struct {
	addr        string
	env         string
	apiURL      string
	timezone    string
	corsOrigins []string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
	cache       cacheConfig
	media       mediaConfig
	tracing     tracing.Config
	googleCreds string
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type cacheConfig struct {
	backend  string
	addr     string
	password string
	db       int
}

type mediaConfig struct {
	backend   string
	localDir  string
	publicURL string
	bucket    string
	timeout   time.Duration
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(tracing.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(app.rateLimiterMiddleware)

	if app.config.media.backend == "local" && app.config.media.localDir != "" {
		fs := http.StripPrefix("/media/", http.FileServer(http.Dir(app.config.media.localDir)))
		r.Handle("/media/*", fs)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/coupons", func(r chi.Router) {
			r.Post("/", app.createCouponHandler)
			r.Get("/", app.listCouponsHandler)
			r.Post("/apply", app.applyCouponHandler)
			r.Post("/redeem", app.redeemCouponHandler)
			r.Get("/validate", app.validateCouponHandler)
			r.Get("/restaurant/{restaurant_id}", app.restaurantCouponsHandler)
			r.Get("/user/{user_id}", app.userCouponsHandler)

			r.Route("/{coupon_id}", func(r chi.Router) {
				r.Get("/", app.getCouponHandler)
				r.Patch("/", app.updateCouponHandler)
				r.Delete("/", app.deleteCouponHandler)
				r.Patch("/toggle-status", app.toggleCouponHandler)
				r.Get("/remaining-uses", app.remainingUsesHandler)
			})
		})

		r.Route("/restaurants", func(r chi.Router) {
			r.Post("/", app.createRestaurantHandler)
			r.Get("/", app.listRestaurantsHandler)
			r.Get("/nearby", app.nearbyRestaurantsHandler)
			r.Get("/trending", app.trendingRestaurantsHandler)
			r.Get("/stats/cities", app.cityStatsHandler)
			r.Get("/city/{city}", app.restaurantsByCityHandler)
			r.Get("/zone/{zone}", app.restaurantsByZoneHandler)
			r.Get("/slug/{slug}", app.getRestaurantBySlugHandler)

			r.Route("/{restaurant_id}", func(r chi.Router) {
				r.Get("/", app.getRestaurantHandler)
				r.Patch("/", app.updateRestaurantHandler)
				r.Delete("/", app.deleteRestaurantHandler)

				r.Get("/status", app.restaurantStatusHandler)
				r.Patch("/status", app.updateRestaurantStatusHandler)
				r.Get("/is-open", app.isOpenHandler)
				r.Put("/opening-hours", app.setOpeningHoursHandler)
				r.Put("/holidays", app.setHolidaysHandler)

				r.Get("/menu", app.getMenuHandler)
				r.Post("/menu", app.addMenuSectionsHandler)
				r.Post("/menu/import", app.importMenuHandler)
				r.Put("/menu/{section_id}", app.replaceMenuSectionHandler)
				r.Delete("/menu/{section_id}", app.deleteMenuSectionHandler)
				r.Post("/menu/{section_id}/items", app.addMenuItemsHandler)
				r.Delete("/menu/{section_id}/items/{item_id}", app.removeMenuItemHandler)

				r.Put("/logo", app.uploadLogoHandler)
				r.Put("/cover", app.uploadCoverHandler)
				r.Post("/gallery", app.addGalleryImageHandler)
				r.Delete("/gallery/*", app.removeGalleryImageHandler)

				r.Patch("/delivery", app.setDeliveryDetailsHandler)
				r.Get("/delivery-slots", app.listDeliverySlotsHandler)
				r.Post("/delivery-slots", app.addDeliverySlotHandler)
				r.Put("/delivery-slots/{slot_id}", app.replaceDeliverySlotHandler)
				r.Delete("/delivery-slots/{slot_id}", app.deleteDeliverySlotHandler)

				r.Get("/offers", app.listOffersHandler)
				r.Post("/offers", app.addOfferHandler)
				r.Put("/offers/{offer_id}", app.replaceOfferHandler)
				r.Delete("/offers/{offer_id}", app.deleteOfferHandler)

				r.Get("/analytics", app.analyticsHandler)
				r.Post("/views", app.recordViewHandler)
				r.Post("/rating", app.rateRestaurantHandler)

				r.Patch("/verify", app.verifyRestaurantHandler)
				r.Patch("/owner", app.setOwnerHandler)
				r.Post("/managers", app.addManagerHandler)
				r.Delete("/managers/{manager_id}", app.removeManagerHandler)
			})
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Food Delivery API"
	docs.SwaggerInfo.Description = "Restaurants, menus, offers and coupons"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.orderWorker != nil {
		if err := app.orderWorker.Start(); err != nil {
			return fmt.Errorf("failed to start order worker: %w", err)
		}
	}
	if app.mediaCleanupWorker != nil {
		if err := app.mediaCleanupWorker.Start(); err != nil {
			return fmt.Errorf("failed to start media cleanup worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.orderWorker != nil {
			app.orderWorker.Stop()
		}
		if app.mediaCleanupWorker != nil {
			app.mediaCleanupWorker.Stop()
		}

		err := srv.Shutdown(ctx)

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing broker", "error", err)
			} else {
				app.logger.Info("broker connection closed gracefully")
			}
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.shutdownTracing != nil {
			if err := app.shutdownTracing(ctx); err != nil {
				app.logger.Errorw("error flushing traces", "error", err)
			}
		}

		shutdown <- err
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
