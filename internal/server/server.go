package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"
)

type Handlers struct {
	Product      *handler.ProductHandler
	Blog         *handler.BlogHandler
	Order        *handler.OrderHandler
	Rating       *handler.RatingHandler
	Wishlist     *handler.WishlistHandler
	AdminProduct *handler.AdminProductHandler
	AdminBlog    *handler.AdminBlogHandler
	AdminOrder   *handler.AdminOrderHandler
}

// New はechoを組み立ててルートを登録する。起動はしない。
func New(cfg config.Config, rdb *redis.Client, logger zerolog.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))

	RegisterRoutes(e, cfg, rdb, logger, h)

	return e
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, rdb *redis.Client, logger zerolog.Logger, h Handlers) {
	//公開API
	h.Product.RegisterRoutes(e)
	h.Blog.RegisterRoutes(e)

	//認証API（注文作成だけはゲストも可）
	h.Order.RegisterRoutes(e, cfg, rdb, logger)
	h.Rating.RegisterRoutes(e, cfg, rdb, logger)
	h.Wishlist.RegisterRoutes(e, cfg, rdb, logger)

	//管理API
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.AdminBlog.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
