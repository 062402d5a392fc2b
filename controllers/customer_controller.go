package controllers

import (
	"net/http"

	"dressrental/app"
	"dressrental/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CustomerController struct{ *Srv }

func NewCustomerController(s *Srv) *CustomerController { return &CustomerController{Srv: s} }

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var in newCustomerReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	cust := &models.Customer{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Phone:       in.Phone,
		Email:       in.Email,
		DocumentURL: in.DocumentURL,
		Status:      models.CustomerActive,
	}
	if err := cc.Repo.CreateCustomer(c.Request.Context(), cust); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cust)
}

// ListCustomers applies the frequent-customer rule on read.
func (cc *CustomerController) ListCustomers(c *gin.Context) {
	customers, err := cc.Repo.ListCustomers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"customers": customers})
}

func (cc *CustomerController) GetCustomer(c *gin.Context) {
	cust, err := cc.Repo.CustomerStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

// SetStatus is the manual override, including blacklisting. A later
// read may re-promote a reverted frequent customer; accepted tradeoff.
func (cc *CustomerController) SetStatus(c *gin.Context) {
	var in struct {
		Status models.CustomerStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	cust, err := cc.Repo.SetCustomerStatus(c.Request.Context(), c.Param("id"), in.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}
