package routes

import (
	"net/http"

	"festa-pos/controllers"
	"festa-pos/middlewares"
	"festa-pos/models"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth        *controllers.AuthController
	Products    *controllers.ProductController
	Orders      *controllers.OrderController
	Kitchen     *controllers.KitchenController
	Dashboard   *controllers.DashboardController
	Memos       *controllers.MemoController
	CashSession *controllers.CashSessionController
}

func RegisterRoutes(r *gin.Engine, ctl Controllers, jwtSecret string) {
	auth := middlewares.AuthMiddleware(jwtSecret)
	streamAuth := middlewares.StreamAuthMiddleware(jwtSecret)
	cashiers := middlewares.RoleMiddleware(models.RoleAdmin, models.RoleStaff)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/login", ctl.Auth.Login)

	// Products
	products := r.Group("/products")
	products.Use(auth)
	{
		products.GET("", ctl.Products.GetProducts)
		products.POST("", middlewares.RoleMiddleware(models.RoleAdmin), ctl.Products.CreateProduct)
		products.PUT("/:id", middlewares.RoleMiddleware(models.RoleAdmin), ctl.Products.UpdateProduct)
	}

	// Orders
	orders := r.Group("/orders")
	orders.Use(auth)
	{
		orders.POST("", cashiers, ctl.Orders.CreateOrder)
		orders.GET("", ctl.Orders.GetOrders)
		orders.GET("/:id", ctl.Orders.GetOrderByID)
		orders.PATCH("/:id/status", ctl.Orders.UpdateOrderStatus)
		orders.PATCH("/:id/items/:position", ctl.Orders.UpdateItemCompletion)
	}

	// Kitchen display
	kitchen := r.Group("/kitchen")
	kitchen.Use(auth)
	{
		kitchen.GET("", ctl.Kitchen.GetKitchen)
	}

	// Dashboard
	dashboard := r.Group("/dashboard")
	dashboard.Use(auth, cashiers)
	{
		dashboard.GET("/today", ctl.Dashboard.GetDaily)
		dashboard.GET("/history", ctl.Dashboard.GetHistory)
		dashboard.GET("/export", ctl.Dashboard.ExportDaily)
		dashboard.POST("/report", middlewares.RoleMiddleware(models.RoleAdmin), ctl.Dashboard.SendReport)
	}

	// Memo board
	memos := r.Group("/memos")
	memos.Use(auth)
	{
		memos.GET("", ctl.Memos.GetMemos)
		memos.POST("", ctl.Memos.CreateMemo)
	}

	// Live streams (SSE)
	r.GET("/orders/stream", streamAuth, ctl.Orders.Stream)
	r.GET("/kitchen/stream", streamAuth, ctl.Kitchen.Stream)
	r.GET("/dashboard/stream", streamAuth, cashiers, ctl.Dashboard.Stream)
	r.GET("/memos/stream", streamAuth, ctl.Memos.Stream)

	// Cash sessions
	cash := r.Group("/cash-sessions")
	cash.Use(auth, cashiers)
	{
		cash.GET("/current", ctl.CashSession.GetCurrentCashSession)
		cash.POST("/open", ctl.CashSession.OpenCashSession)
		cash.POST("/close", ctl.CashSession.CloseCashSession)
	}
}
