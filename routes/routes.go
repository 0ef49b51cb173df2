package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jeweladmin-backend/config"
	"jeweladmin-backend/controllers"
	"jeweladmin-backend/metrics"
	"jeweladmin-backend/utils"
)

func SetupRouter(cfg *config.Config, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger())

	r.Use(httpMetrics.Middleware())
	r.GET("/metrics", httpMetrics.Handler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.POST("/logout", controllers.Logout)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Category routes
		categories := api.Group("/categories")
		{
			categories.GET("", controllers.GetCategories)
			categories.POST("", controllers.CreateCategory)
			categories.GET("/:id", controllers.GetCategory)
			categories.PUT("/:id", controllers.UpdateCategory)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}

		// Enquiry routes
		enquiries := api.Group("/enquiries")
		{
			enquiries.GET("", controllers.GetEnquiries)
			enquiries.GET("/:id", controllers.GetEnquiry)
			enquiries.PUT("/:id/respond", controllers.RespondEnquiry)
			enquiries.PUT("/:id/status", controllers.UpdateEnquiryStatus)
			enquiries.DELETE("/:id", controllers.DeleteEnquiry)
		}

		// Feature section routes
		features := api.Group("/features")
		{
			features.GET("", controllers.GetFeatures)
			features.POST("", controllers.CreateFeature)
			features.PUT("/:id", controllers.UpdateFeature)
			features.DELETE("/:id", controllers.DeleteFeature)
		}

		// Audience routes
		audiences := api.Group("/audiences")
		{
			audiences.GET("", controllers.GetAudiences)
			audiences.POST("", controllers.CreateAudience)
			audiences.PUT("/:id", controllers.UpdateAudience)
			audiences.DELETE("/:id", controllers.DeleteAudience)
		}

		// User browsing routes (read-only)
		users := api.Group("/users")
		{
			users.GET("", controllers.GetUsers)
			users.GET("/:id", controllers.GetUser)
		}

		api.POST("/uploads", controllers.UploadImage)
		api.GET("/audit", controllers.GetAuditTrail)
	}

	return r
}
