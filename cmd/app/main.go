package main

import (
	"context"
	"errors"
	"net/http"
	"time"
	"travelwise/cmd/fx/account_fx"
	"travelwise/cmd/fx/catalog_fx"
	"travelwise/cmd/fx/config_fx"
	"travelwise/cmd/fx/controllers_fx"
	"travelwise/cmd/fx/db_fx"
	"travelwise/cmd/fx/generation_fx"
	"travelwise/cmd/fx/memcache_fx"
	"travelwise/cmd/fx/redis_fx"
	"travelwise/internal/api/controllers"
	"travelwise/internal/config"
	"travelwise/internal/services"
	"travelwise/pkg/middleware"
	"travelwise/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		db_fx.Module,
		redis_fx.Module,
		memcache_fx.Module,
		generation_fx.Module,
		account_fx.Module,
		catalog_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type routeParams struct {
	fx.In

	Config      *config.Config
	Logger      *zap.Logger
	Tokens      *utils.TokenManager
	Sessions    services.AccountServiceInterface
	Itineraries *controllers.ItineraryController
	Accounts    *controllers.AccountController
	Catalog     *controllers.CatalogController
	Favorites   *controllers.FavoritesController
}

func ProvideRouter(p routeParams) *gin.Engine {
	gin.SetMode(p.Config.GinMode)

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger))
	r.Use(middleware.Recovery(p.Logger))
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p routeParams) {
	r.GET("/healthz", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
	})

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.POST("", p.Itineraries.Generate)
	itineraryGroup.POST("/parse", p.Itineraries.Parse)
	itineraryGroup.POST("/prompt", p.Itineraries.Prompt)
	itineraryGroup.POST("/text", p.Itineraries.GenerateText)

	auth := middleware.JWTAuthMiddleware(p.Tokens, p.Sessions)

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/register", p.Accounts.Register)
	accountGroup.POST("/login", p.Accounts.Login)
	accountGroup.GET("/exists", p.Accounts.EmailExists)
	accountGroup.GET("/me", auth, p.Accounts.Me)
	accountGroup.POST("/logout", auth, p.Accounts.Logout)

	catalogGroup := r.Group("/catalog")
	catalogGroup.GET("/destinations", p.Catalog.ListDestinations)
	catalogGroup.GET("/destinations/:id", p.Catalog.GetDestination)
	catalogGroup.GET("/hotels", p.Catalog.ListHotels)
	catalogGroup.GET("/flights", p.Catalog.ListFlights)
	catalogGroup.GET("/cars", p.Catalog.ListCars)
	catalogGroup.GET("/meals", p.Catalog.ListMeals)
	catalogGroup.GET("/packages", p.Catalog.ListPackages)

	favoritesGroup := r.Group("/favorites", auth)
	favoritesGroup.GET("", p.Favorites.List)
	favoritesGroup.GET("/:destinationId", p.Favorites.Check)
	favoritesGroup.POST("/:destinationId", p.Favorites.Add)
	favoritesGroup.DELETE("/:destinationId", p.Favorites.Remove)
}
