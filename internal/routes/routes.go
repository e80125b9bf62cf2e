package routes

import (
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"catalog-admin/internal/catalog"
	"catalog-admin/internal/handlers"
	"catalog-admin/internal/middleware"
)

// New builds the engine: recovery, request logging, CORS for the browser
// console, the admin gate, then every route.
func New(env *handlers.Env, allowedOrigins []string) (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := catalog.RegisterValidations(v); err != nil {
			return nil, err
		}
	}

	if len(allowedOrigins) == 0 {
		return nil, errors.New("at least one allowed origin is required")
	}

	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.AdminGate(env.Signer, env.Gate))

	Register(r, env)
	return r, nil
}

func Register(r *gin.Engine, env *handlers.Env) {
	r.GET("/healthz", handlers.Healthz(env))
	r.GET("/", handlers.Home(env))

	auth := r.Group("/auth")
	{
		auth.POST("/login", handlers.Login(env))
		auth.POST("/logout", handlers.Logout())
		auth.GET("/me", middleware.RequireAdmin(env.Signer, env.Gate), handlers.Me())
	}

	api := r.Group("/api")
	{
		api.GET("/overview", handlers.Overview(env))

		api.GET("/admins", handlers.ListAdmins(env))
		api.POST("/admins", handlers.CreateAdmin(env))
		api.DELETE("/admins/:id", handlers.DeleteAdmin(env))

		api.GET("/artisans", handlers.ListArtisans(env))
		api.GET("/artisans/picker", handlers.ArtisanPicker(env))
		api.GET("/artisans/:id", handlers.GetArtisan(env))
		api.POST("/artisans", handlers.CreateArtisan(env))
		api.PUT("/artisans/:id", handlers.UpdateArtisan(env))
		api.DELETE("/artisans/:id", handlers.DeleteArtisan(env))

		api.GET("/categories", handlers.ListCategories(env))
		api.GET("/categories/:id", handlers.GetCategory(env))
		api.POST("/categories", handlers.CreateCategory(env))
		api.PUT("/categories/:id", handlers.UpdateCategory(env))
		api.DELETE("/categories/:id", handlers.DeleteCategory(env))

		api.GET("/products", handlers.ListProducts(env))
		api.GET("/products/picker", handlers.ProductPicker(env))
		api.POST("/products/wizard", handlers.ProductWizard(env))
		api.GET("/products/:id", handlers.GetProduct(env))
		api.POST("/products", handlers.CreateProduct(env))
		api.PUT("/products/:id", handlers.UpdateProduct(env))
		api.PATCH("/products/:id/enabled", handlers.SetProductEnabled(env))
		api.DELETE("/products/:id", handlers.DeleteProduct(env))

		api.GET("/genres", handlers.ListGenres(env))
		api.POST("/genres", handlers.CreateGenre(env))
		api.POST("/genres/probe-image", handlers.ProbeImage(env))
		api.DELETE("/genres/:id", handlers.DeleteGenre(env))
		api.GET("/genres/:id/products", handlers.GetGenreProducts(env))
		api.PUT("/genres/:id/products", handlers.SaveGenreProducts(env))

		api.GET("/banners", handlers.ListBanners(env))
		api.POST("/banners", handlers.CreateBanner(env))
		api.PUT("/banners/:id", handlers.UpdateBanner(env))
		api.DELETE("/banners/:id", handlers.DeleteBanner(env))

		api.GET("/sale", handlers.GetSale(env))
		api.PUT("/sale", handlers.SaveSale(env))

		api.GET("/delivery", handlers.GetDelivery(env))
		api.PUT("/delivery", handlers.SaveDelivery(env))
	}
}
