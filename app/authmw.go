package app

import (
	"net/http"
	"time"

	"dressrental/db"
	"dressrental/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const AppSessionCookie = "app_session"

// AuthRequired resolves the session cookie to a staff record and puts
// staffID / isAdmin into the request context. Identity itself is
// trusted as established by the upstream provider.
func AuthRequired(appSess *session.AppSessionStore, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		st, err := repo.FindStaffByID(c.Request.Context(), as.StaffID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		c.Set("staffID", st.ID)
		c.Set("username", st.Username)
		c.Set("isAdmin", st.IsAdmin)
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, ok := c.Get("isAdmin"); !ok || v != true {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// TouchLastSeen stamps staff activity at most once per throttle window.
func TouchLastSeen(repo *db.Repo, rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("staffID")
		if !ok {
			c.Next()
			return
		}
		sid, _ := v.(string)
		if sid == "" {
			c.Next()
			return
		}

		key := "staff:lastseen:" + sid
		if ok, _ := rdb.SetNX(c, key, "1", throttle).Result(); ok {
			_ = repo.TouchStaffSeen(c, sid) // best effort, never blocks the request
		}
		c.Next()
	}
}
