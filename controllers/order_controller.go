package controllers

import (
	"net/http"
	"time"

	"dressrental/app"
	"dressrental/dates"
	"dressrental/db"
	"dressrental/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderController struct{ *Srv }

func NewOrderController(s *Srv) *OrderController { return &OrderController{Srv: s} }

type newCustomerReq struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	DocumentURL string `json:"documentUrl"`
}

type createOrderReq struct {
	ItemID         string          `json:"itemId" binding:"required"`
	CustomerID     string          `json:"customerId"`
	Customer       *newCustomerReq `json:"customer"`
	DeliveryDate   string          `json:"deliveryDate" binding:"required"`
	DueDate        string          `json:"dueDate" binding:"required"`
	AdvancePayment decimal.Decimal `json:"advancePayment"`
	Notes          string          `json:"notes"`
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	var in createOrderReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	delivery, err := dates.ParseDay(in.DeliveryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "deliveryDate must be YYYY-MM-DD"})
		return
	}
	due, err := dates.ParseDay(in.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "dueDate must be YYYY-MM-DD"})
		return
	}
	if in.AdvancePayment.IsNegative() {
		c.JSON(http.StatusBadRequest, app.H{"error": "advancePayment must be >= 0"})
		return
	}

	customerID := in.CustomerID
	if customerID == "" {
		if in.Customer == nil {
			c.JSON(http.StatusBadRequest, app.H{"error": "customerId or customer is required"})
			return
		}
		// First reservation may create the customer record inline.
		cust, err := oc.Repo.FindOrCreateCustomer(c.Request.Context(), &models.Customer{
			ID:          uuid.NewString(),
			Name:        in.Customer.Name,
			Phone:       in.Customer.Phone,
			Email:       in.Customer.Email,
			DocumentURL: in.Customer.DocumentURL,
			Status:      models.CustomerActive,
		})
		if err != nil {
			fail(c, err)
			return
		}
		customerID = cust.ID
	}

	order, err := oc.Repo.CreateOrder(c.Request.Context(), db.CreateOrderInput{
		ItemID:         in.ItemID,
		CustomerID:     customerID,
		StaffID:        staffID(c),
		DeliveryDate:   delivery,
		DueDate:        due,
		AdvancePayment: in.AdvancePayment,
		Notes:          in.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (oc *OrderController) Transition(c *gin.Context) {
	var in struct {
		Status     models.OrderStatus `json:"status" binding:"required"`
		Notes      string             `json:"notes"`
		PenaltyFee *decimal.Decimal   `json:"penaltyFee"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.PenaltyFee != nil && in.PenaltyFee.IsNegative() {
		c.JSON(http.StatusBadRequest, app.H{"error": "penaltyFee must be >= 0"})
		return
	}

	order, err := oc.Repo.TransitionOrder(c.Request.Context(), c.Param("id"), in.Status, in.Notes, in.PenaltyFee)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	order, err := oc.Repo.FindOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) ListOrders(c *gin.Context) {
	q := db.OrdersQuery{
		ItemID:     c.Query("itemId"),
		CustomerID: c.Query("customerId"),
		Status:     c.Query("status"),
	}
	var window [2]*time.Time
	for i, key := range []string{"from", "to"} {
		if s := c.Query(key); s != "" {
			d, err := dates.ParseDay(s)
			if err != nil {
				c.JSON(http.StatusBadRequest, app.H{"error": key + " must be YYYY-MM-DD"})
				return
			}
			window[i] = &d
		}
	}
	q.From, q.To = window[0], window[1]

	orders, err := oc.Repo.ListOrders(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"orders": orders})
}
