package controllers

import (
	"errors"
	"net/http"
	"time"

	"dressrental/app"
	"dressrental/db"
	"dressrental/session"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Repo       *db.Repo
	AppSess    *session.AppSessionStore
	WebOrigin  string
	SessionTTL time.Duration
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:       db.NewRepo(a.DB),
		AppSess:    a.AppSessions(),
		WebOrigin:  a.Config.WebOrigin,
		SessionTTL: a.Config.SessionTTL,
	}
}

// fail maps the business-error taxonomy onto HTTP statuses. Each rule
// gets its own code and message so the UI can tell the caller exactly
// which check rejected the operation.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, db.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, db.ErrSlotUnavailable),
		errors.Is(err, db.ErrStatusConflict),
		errors.Is(err, db.ErrItemNotRentable):
		status = http.StatusConflict
	case errors.Is(err, db.ErrInvalidTransition),
		errors.Is(err, db.ErrMissingNotes):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, db.ErrInvalidDateRange),
		errors.Is(err, db.ErrInvalidStatus):
		status = http.StatusBadRequest
	}
	c.JSON(status, app.H{"error": err.Error()})
}

func staffID(c *gin.Context) string {
	v, _ := c.Get("staffID")
	id, _ := v.(string)
	return id
}
