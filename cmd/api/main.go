package main

import (
	"context"
	"strings"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/cache"
	"github.com/TejashHub/FoodDelivery-sub001/internal/env"
	"github.com/TejashHub/FoodDelivery-sub001/internal/media"
	"github.com/TejashHub/FoodDelivery-sub001/internal/parser"
	"github.com/TejashHub/FoodDelivery-sub001/internal/queue"
	"github.com/TejashHub/FoodDelivery-sub001/internal/ratelimiter"
	"github.com/TejashHub/FoodDelivery-sub001/internal/service"
	"github.com/TejashHub/FoodDelivery-sub001/internal/store/mongo"
	"github.com/TejashHub/FoodDelivery-sub001/internal/tracing"
	"github.com/TejashHub/FoodDelivery-sub001/internal/worker"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const version = "1.0.0"

//	@title			Food Delivery API
//	@description	Restaurants, menus, offers and coupons
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath					/api/v1
//
// @securityDefinitions.apiKey	ApiKeyAuth
// @in							header
// @name						Authorization
// @description
func main() {
	_ = godotenv.Load()

	cfg := config{
		addr:        env.GetString("ADDR", ":8080"),
		apiURL:      env.GetString("EXTERNAL_URL", "localhost:8080"),
		env:         env.GetString("ENV", "development"),
		timezone:    env.GetString("TIMEZONE", "UTC"),
		corsOrigins: splitOrigins(env.GetString("CORS_ALLOWED_ORIGINS", "*")),
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: env.GetInt("RATELIMITER_REQUESTS_COUNT", 20),
			TimeFrame:            time.Second * 5,
			Enabled:              env.GetBool("RATE_LIMITER_ENABLED", true),
		},
		mongo: mongoConfig{
			URI:      env.GetString("MONGO_URI", "mongodb://localhost:27017"),
			Database: env.GetString("MONGO_DATABASE", "food_delivery"),
			Timeout:  time.Second * 10,
		},
		rabbitMQ: rabbitMQConfig{
			URL:           env.GetString("RABBITMQ_URL", ""),
			MaxRetries:    env.GetInt("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay:    time.Second * 2,
			PrefetchCount: env.GetInt("RABBITMQ_PREFETCH_COUNT", 10),
		},
		cache: cacheConfig{
			backend:  env.GetString("CACHE_BACKEND", "memory"),
			addr:     env.GetString("REDIS_ADDR", "localhost:6379"),
			password: env.GetString("REDIS_PASSWORD", ""),
			db:       env.GetInt("REDIS_DB", 0),
		},
		media: mediaConfig{
			backend:   env.GetString("MEDIA_BACKEND", "local"),
			localDir:  env.GetString("MEDIA_LOCAL_DIR", "./uploads"),
			publicURL: env.GetString("MEDIA_PUBLIC_URL", "http://localhost:8080/media"),
			bucket:    env.GetString("GCS_BUCKET", ""),
			timeout:   env.GetDuration("MEDIA_TIMEOUT", 30*time.Second),
		},
		tracing: tracing.Config{
			Enabled:     env.GetBool("TRACING_ENABLED", false),
			Endpoint:    env.GetString("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
			ServiceName: "food-delivery-api",
		},
		googleCreds: env.GetString("GOOGLE_CREDENTIALS_PATH", ""),
	}
	cfg.tracing.Environment = cfg.env

	// logger
	logger := zap.Must(zap.NewProduction()).Sugar()
	if cfg.env == "development" {
		logger = zap.Must(zap.NewDevelopment()).Sugar()
	}
	defer logger.Sync()

	location, err := time.LoadLocation(cfg.timezone)
	if err != nil {
		logger.Fatalw("invalid TIMEZONE", "timezone", cfg.timezone, "error", err)
	}

	shutdownTracing, err := tracing.Init(cfg.tracing)
	if err != nil {
		logger.Fatalw("failed to initialize tracing", "error", err)
	}

	// rate limiter
	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	// storage
	storage, err := mongo.New(mongo.Config{
		URI:      cfg.mongo.URI,
		Database: cfg.mongo.Database,
		Timeout:  cfg.mongo.Timeout,
	})
	if err != nil {
		logger.Fatalw("failed to connect to MongoDB", "error", err)
	}

	logger.Info("connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := storage.CreateIndexes(ctx); err != nil {
		logger.Warnw("failed to create indexes", "error", err)
	} else {
		logger.Info("MongoDB indexes created successfully")
	}

	// repos
	couponRepo := mongo.NewCouponRepository(storage.Database())
	restaurantRepo := mongo.NewRestaurantRepository(storage.Database())

	// broker
	var broker queue.Broker
	if cfg.rabbitMQ.URL != "" {
		rabbit, err := queue.NewRabbitMQBroker(queue.Config{
			URL:           cfg.rabbitMQ.URL,
			MaxRetries:    cfg.rabbitMQ.MaxRetries,
			RetryDelay:    cfg.rabbitMQ.RetryDelay,
			PrefetchCount: cfg.rabbitMQ.PrefetchCount,
		})
		if err != nil {
			logger.Fatalw("failed to connect to RabbitMQ", "error", err)
		}
		broker = rabbit
		logger.Info("connected to RabbitMQ")
	} else {
		broker = queue.NewMemoryBroker()
		logger.Warn("RABBITMQ_URL not set, using in-process broker")
	}

	// cache
	var restaurantCache cache.Cache
	switch cfg.cache.backend {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.cache.addr,
			Password: cfg.cache.password,
			DB:       cfg.cache.db,
		})
		if err != nil {
			logger.Fatalw("failed to connect to Redis", "error", err)
		}
		restaurantCache = redisCache
		logger.Info("connected to Redis")
	default:
		restaurantCache = cache.NewMemoryCache()
	}

	// media
	var store media.Store
	switch cfg.media.backend {
	case "gcs":
		gcs, err := media.NewGCSStore(ctx, media.GCSConfig{
			Bucket:          cfg.media.bucket,
			CredentialsFile: cfg.googleCreds,
			Timeout:         cfg.media.timeout,
		})
		if err != nil {
			logger.Fatalw("failed to create GCS media store", "error", err)
		}
		store = gcs
	default:
		local, err := media.NewLocalStore(cfg.media.localDir, cfg.media.publicURL)
		if err != nil {
			logger.Fatalw("failed to create local media store", "error", err)
		}
		store = local
	}
	logger.Infow("media store ready", "backend", cfg.media.backend)

	var menus service.MenuSource
	if cfg.googleCreds != "" {
		sheetsParser, err := parser.New(ctx, parser.Config{CredentialsFile: cfg.googleCreds})
		if err != nil {
			logger.Fatalw("failed to create Google Sheets parser", "error", err)
		}
		menus = sheetsParser
		logger.Info("Google Sheets parser initialized")
	} else {
		logger.Warn("Google credentials not provided, menu import is disabled")
	}

	couponService := service.NewCouponService(couponRepo, logger)
	restaurantService := service.NewRestaurantService(
		restaurantRepo,
		store,
		broker,
		restaurantCache,
		menus,
		location,
		logger,
	)
	orderService := service.NewOrderService(storage, couponService, restaurantRepo, logger)

	app := &application{
		config:             cfg,
		logger:             logger,
		rateLimiter:        rateLimiter,
		storage:            storage,
		broker:             broker,
		couponService:      couponService,
		restaurantService:  restaurantService,
		orderWorker:        worker.NewOrderFinalizedWorker(orderService, broker, logger),
		mediaCleanupWorker: worker.NewMediaCleanupWorker(restaurantService, broker, logger),
		shutdownTracing:    shutdownTracing,
	}

	mux := app.mount()

	logger.Fatal(app.run(mux))
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
