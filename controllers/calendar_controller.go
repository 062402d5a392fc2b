package controllers

import (
	"net/http"
	"strconv"

	"dressrental/app"
	"dressrental/dates"
	"dressrental/db"

	"github.com/gin-gonic/gin"
)

type CalendarController struct{ *Srv }

func NewCalendarController(s *Srv) *CalendarController { return &CalendarController{Srv: s} }

func (cal *CalendarController) ActivitiesForDay(c *gin.Context) {
	day, err := dates.ParseDay(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	acts, err := cal.Repo.ActivitiesForDay(c.Request.Context(), day)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"day": dates.FormatDay(day), "activities": acts})
}

func (cal *CalendarController) Upcoming(c *gin.Context) {
	kind := db.ActivityKind(c.DefaultQuery("kind", string(db.ActivityDelivery)))
	if kind != db.ActivityDelivery && kind != db.ActivityReturn {
		c.JSON(http.StatusBadRequest, app.H{"error": "kind must be delivery or return"})
		return
	}
	n, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "days must be a non-negative integer"})
		return
	}

	acts, err := cal.Repo.UpcomingWithinDays(c.Request.Context(), n, kind)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"kind": kind, "days": n, "activities": acts})
}
