package middleware

import (
	"net/http"

	"github.com/dododo1295/keepnotes/services"
	"github.com/dododo1295/keepnotes/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	SessionIDKey     = "session_id"
	AuthenticatedKey = "authenticated"
)

// SessionMiddleware resolves the session cookie against the session store and
// records the result on the context. It never rejects a request itself.
func SessionMiddleware(checker services.SessionChecker, cookieName string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(AuthenticatedKey, false)

		cookie, err := c.Cookie(cookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		sessionID, err := services.ParseSessionID(cookie)
		if err != nil {
			c.Next()
			return
		}
		c.Set(SessionIDKey, sessionID)

		ok, err := checker.IsAuthenticated(c.Request.Context(), sessionID)
		if err != nil {
			log.Warn().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("Session lookup failed")
			utils.TrackError("session", "lookup")
		}
		c.Set(AuthenticatedKey, ok)
		c.Next()
	}
}

// RequireSession rejects requests that SessionMiddleware did not authenticate.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(AuthenticatedKey) {
			utils.Unauthorized(c, "Not logged in")
			return
		}
		c.Next()
	}
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c *gin.Context, cookieName string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
