package controllers

import (
	"net/http"

	"dressrental/app"
	"dressrental/dates"
	"dressrental/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

func (ic *ItemController) CreateItem(c *gin.Context) {
	var in struct {
		Name        string          `json:"name" binding:"required"`
		RentalPrice decimal.Decimal `json:"rentalPrice"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.RentalPrice.IsNegative() {
		c.JSON(http.StatusBadRequest, app.H{"error": "rentalPrice must be >= 0"})
		return
	}
	it := &models.Item{
		ID:          uuid.NewString(),
		Name:        in.Name,
		RentalPrice: in.RentalPrice,
		Status:      models.ItemAvailable,
	}
	if err := ic.Repo.CreateItem(c.Request.Context(), it); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

func (ic *ItemController) ListItems(c *gin.Context) {
	items, err := ic.Repo.ListItems(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}

func (ic *ItemController) GetItem(c *gin.Context) {
	it, err := ic.Repo.FindItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	rented, err := ic.Repo.ItemRentedToday(c.Request.Context(), it.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"item": it, "rentedToday": rented})
}

// CheckAvailability probes a candidate range. The answer is not a
// hold: creation re-checks under the item lock.
func (ic *ItemController) CheckAvailability(c *gin.Context) {
	from, err := dates.ParseDay(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "from must be YYYY-MM-DD"})
		return
	}
	to, err := dates.ParseDay(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "to must be YYYY-MM-DD"})
		return
	}

	ok, conflictID, err := ic.Repo.CheckAvailability(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	resp := app.H{"available": ok}
	if conflictID != "" {
		resp["conflictingOrderId"] = conflictID
	}
	c.JSON(http.StatusOK, resp)
}

// SetStatus is the staff override. With "expected" in the body it is
// the compare-and-set; without it, the unconditional write.
func (ic *ItemController) SetStatus(c *gin.Context) {
	var in struct {
		Status   models.ItemStatus  `json:"status" binding:"required"`
		Expected *models.ItemStatus `json:"expected"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if !in.Status.Valid() {
		c.JSON(http.StatusBadRequest, app.H{"error": "unknown item status"})
		return
	}
	if in.Expected != nil && !in.Expected.Valid() {
		c.JSON(http.StatusBadRequest, app.H{"error": "unknown expected item status"})
		return
	}

	var (
		it  *models.Item
		err error
	)
	if in.Expected != nil {
		it, err = ic.Repo.SetItemStatus(c.Request.Context(), c.Param("id"), *in.Expected, in.Status)
	} else {
		it, err = ic.Repo.ForceItemStatus(c.Request.Context(), c.Param("id"), in.Status)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}
