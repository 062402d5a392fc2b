package controllers

import (
	"net/http"
	"strings"

	"dressrental/app"
	"dressrental/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StaffController struct{ *Srv }

func NewStaffController(s *Srv) *StaffController { return &StaffController{Srv: s} }

// CreateSession exchanges an upstream-verified username for a session
// cookie. Credential verification lives in the identity provider in
// front of this service; here the identity is trusted as given.
func (sc *StaffController) CreateSession(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	st, err := sc.Repo.FindStaffByUsername(c.Request.Context(), in.Username)
	if err != nil {
		fail(c, err)
		return
	}

	id := uuid.NewString()
	if err := sc.AppSess.Create(c.Request.Context(), id, st.ID); err != nil {
		fail(c, err)
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(sc.WebOrigin, "https://"),
		MaxAge:   int(sc.SessionTTL.Seconds()),
	})
	c.JSON(http.StatusOK, app.H{"staffId": st.ID, "isAdmin": st.IsAdmin})
}

func (sc *StaffController) DeleteSession(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = sc.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(sc.WebOrigin, "https://"),
	})
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (sc *StaffController) CreateStaff(c *gin.Context) {
	var in struct {
		Username    string `json:"username" binding:"required"`
		DisplayName string `json:"displayName"`
		IsAdmin     bool   `json:"isAdmin"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.DisplayName == "" {
		in.DisplayName = in.Username
	}
	st := &models.Staff{
		ID:          uuid.NewString(),
		Username:    in.Username,
		DisplayName: in.DisplayName,
		IsAdmin:     in.IsAdmin,
	}
	if err := sc.Repo.CreateStaff(c.Request.Context(), st); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// DeleteStaff removes the record and revokes every session the staff
// member holds, so the deleted account cannot keep acting on a cookie.
func (sc *StaffController) DeleteStaff(c *gin.Context) {
	id := c.Param("id")
	st, err := sc.Repo.FindStaffByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if err := sc.AppSess.RevokeAllForStaff(c.Request.Context(), st.ID); err != nil {
		fail(c, err)
		return
	}
	if err := sc.Repo.DeleteStaffByID(c.Request.Context(), st.ID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (sc *StaffController) WhoAmI(c *gin.Context) {
	v, _ := c.Get("username")
	c.JSON(http.StatusOK, app.H{
		"staffId":  staffID(c),
		"username": v,
	})
}
