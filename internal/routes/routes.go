package routes

import (
	"net/http"
	"time"

	"tipjar/internal/handlers"
	"tipjar/internal/middlewares"

	_ "tipjar/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-openapi/runtime/middleware"
	"github.com/swaggo/swag"
)

func InitRoutes(
	transactionHandler *handlers.TransactionHandler,
	notificationHandler *handlers.NotificationHandler,
	userHandler *handlers.UserHandler,
	tipLimiter *middlewares.RateLimitMiddleware,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.Default()

	_ = router.SetTrustedProxies(nil)

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.StaticFile("/swagger.yaml", "./swagger.yaml")

	opts := middleware.SwaggerUIOpts{SpecURL: "/swagger.yaml"}
	sh := middleware.SwaggerUI(opts, nil)

	router.GET("/swagger/*any", func(c *gin.Context) {
		if c.Param("any") != "/doc.json" {
			sh.ServeHTTP(c.Writer, c.Request)
			return
		}

		doc, err := swag.ReadDoc()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	})

	// веб-клиент ходит и с префиксом /api, и без него
	for _, group := range []*gin.RouterGroup{router.Group("/api"), router.Group("/")} {
		group.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message": "pong",
			})
		})

		group.POST("/tip", tipLimiter.Handle(), transactionHandler.CreateTip)
		group.GET("/tip", transactionHandler.ListTips)

		group.GET("/transactions", transactionHandler.ListTransactions)
		group.PUT("/transactions", transactionHandler.UpdateTransaction)

		group.GET("/notifications", notificationHandler.ListNotifications)
		group.POST("/notifications", notificationHandler.CreateNotification)
		group.PUT("/notifications/mark-all-read", notificationHandler.MarkAllRead)
		group.PUT("/notifications/:id", notificationHandler.MarkRead)

		group.GET("/users", userHandler.ListUsers)
		group.POST("/users", userHandler.CreateUser)
		group.GET("/users/:id", userHandler.GetUser)
		group.PUT("/users/:id", userHandler.UpdateUser)
		group.DELETE("/users/:id", userHandler.DeleteUser)
	}

	return router
}
