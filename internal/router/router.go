package router

import (
	"time"

	"github.com/sunnybharadwajp/dhavi-creations-store/internal/config"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/handler"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/infra"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/middleware"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/repository"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/service"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/sku"
	"github.com/sunnybharadwajp/dhavi-creations-store/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis/BlobStore
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, store infra.BlobStore, blobCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	skuGen := sku.New()
	categorySvc := service.NewCategoryService(categoryRepo)
	productSvc := service.NewProductService(productRepo, imageRepo, categorySvc, skuGen, dispatcher)
	imageSvc := service.NewImageService(imageRepo, productRepo, store, blobCB, dispatcher, cfg.BlobPrefix)
	storefrontSvc := service.NewStorefrontService(productRepo, categoryRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc)
	imagesH := handler.NewImagesHandler(imageSvc, cfg.MaxUploadBytes)
	storefrontH := handler.NewStorefrontHandler(storefrontSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, blobCB))

	v1 := r.Group("/v1")
	{
		// Public storefront
		v1.GET("/storefront", storefrontH.Landing)

		categories := v1.Group("/categories")
		{
			categories.POST("", categoriesH.Create)
			categories.GET("", categoriesH.List)
			categories.GET("/:id", categoriesH.Get)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.POST("/:id/images", imagesH.Attach)
		}

		images := v1.Group("/images")
		{
			images.POST("", imagesH.Upload)
			images.DELETE("", imagesH.Delete)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
