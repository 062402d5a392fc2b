package routes

import (
	"time"

	"dressrental/app"
	"dressrental/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	itemCtl := controllers.NewItemController(s)
	orderCtl := controllers.NewOrderController(s)
	custCtl := controllers.NewCustomerController(s)
	calCtl := controllers.NewCalendarController(s)
	staffCtl := controllers.NewStaffController(s)

	authMW := app.AuthRequired(s.AppSess, s.Repo)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// Sessions (identity verified upstream)
	// ------------------------------
	r.POST("/api/session", staffCtl.CreateSession)
	sess := r.Group("/api", authMW)
	{
		sess.DELETE("/session", staffCtl.DeleteSession)
		sess.GET("/whoami", staffCtl.WhoAmI)
	}

	// ------------------------------
	// Staff management (admin)
	// ------------------------------
	staff := r.Group("/api/staff", authMW, adminMW)
	{
		staff.POST("", staffCtl.CreateStaff)
		staff.DELETE("/:id", staffCtl.DeleteStaff)
	}

	// ------------------------------
	// Inventory
	// ------------------------------
	itemsAdmin := r.Group("/api/items", authMW, adminMW)
	{
		itemsAdmin.POST("", itemCtl.CreateItem)
		itemsAdmin.PATCH("/:id/status", itemCtl.SetStatus)
	}
	items := r.Group("/api/items", authMW, seenMW)
	{
		items.GET("", itemCtl.ListItems)
		items.GET("/:id", itemCtl.GetItem)
		items.GET("/:id/availability", itemCtl.CheckAvailability) // ?from=&to=
	}

	// ------------------------------
	// Orders (reservation lifecycle)
	// ------------------------------
	orders := r.Group("/api/orders", authMW, seenMW)
	{
		orders.POST("", orderCtl.CreateOrder)
		orders.GET("", orderCtl.ListOrders) // ?itemId=&customerId=&status=&from=&to=
		orders.GET("/:id", orderCtl.GetOrder)
		orders.POST("/:id/status", orderCtl.Transition)
	}

	// ------------------------------
	// Customers
	// ------------------------------
	customers := r.Group("/api/customers", authMW, seenMW)
	{
		customers.POST("", custCtl.CreateCustomer)
		customers.GET("", custCtl.ListCustomers)
		customers.GET("/:id", custCtl.GetCustomer)
	}
	customersAdmin := r.Group("/api/customers", authMW, adminMW)
	{
		customersAdmin.PATCH("/:id/status", custCtl.SetStatus)
	}

	// ------------------------------
	// Calendar projections
	// ------------------------------
	calendar := r.Group("/api/calendar", authMW, seenMW)
	{
		calendar.GET("/day/:date", calCtl.ActivitiesForDay)
		calendar.GET("/upcoming", calCtl.Upcoming) // ?kind=delivery|return&days=n
	}
}
