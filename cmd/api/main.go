package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logger"
	"storefront/internal/server"
	"storefront/internal/usecase"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	log := logger.New("storefront-api")

	//.envは任意。無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect db")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Brand{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.ProductRating{},
		&model.WishlistItem{},
		&model.BlogCategory{},
		&model.BlogTag{},
		&model.BlogPost{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	//redisは任意。アドレス未設定ならrate limitなしで起動する
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	brandRepo := infraRepo.NewBrandGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	ratingRepo := infraRepo.NewRatingGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	postRepo := infraRepo.NewPostGormRepository(gormDB)
	tagRepo := infraRepo.NewTagGormRepository(gormDB)
	blogCatRepo := infraRepo.NewBlogCategoryGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo, brandRepo, ratingRepo, auditRepo, idGen, clock)
	blogUC := usecase.NewBlogUsecase(postRepo, tagRepo, blogCatRepo, auditRepo, idGen, clock, log)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, auditRepo, idGen, clock, cfg.ShippingFee)
	ratingUC := usecase.NewRatingUsecase(ratingRepo, productRepo, idGen, clock)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, productRepo, idGen, clock)

	//Handler生成
	handlers := server.Handlers{
		Product:      handler.NewProductHandler(catalogUC),
		Blog:         handler.NewBlogHandler(blogUC),
		Order:        handler.NewOrderHandler(orderUC),
		Rating:       handler.NewRatingHandler(ratingUC),
		Wishlist:     handler.NewWishlistHandler(wishlistUC),
		AdminProduct: handler.NewAdminProductHandler(catalogUC),
		AdminBlog:    handler.NewAdminBlogHandler(blogUC),
		AdminOrder:   handler.NewAdminOrderHandler(orderUC),
	}

	e := server.New(cfg, rdb, log, handlers)

	//Server起動
	addr := cfg.Port
	if addr == "" {
		addr = "8080"
	}
	if addr[0] != ':' {
		addr = ":" + addr
	}

	log.Info().Str("addr", addr).Msg("starting server")
	if err := server.Start(e, addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
