package handler

import (
	"github.com/dododo1295/keepnotes/middleware"
	"github.com/dododo1295/keepnotes/services"
	"github.com/dododo1295/keepnotes/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type SessionHandler struct {
	sessions   services.SessionChecker
	cookieName string
	log        zerolog.Logger
}

func NewSessionHandler(sessions services.SessionChecker, cookieName string, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, cookieName: cookieName, log: log}
}

// CheckLogin reports the result SessionMiddleware stored on the context.
func (h *SessionHandler) CheckLogin(c *gin.Context) {
	utils.Success(c, gin.H{"loggedIn": c.GetBool(middleware.AuthenticatedKey)})
}

func (h *SessionHandler) Logout(c *gin.Context) {
	if sessionID := c.GetString(middleware.SessionIDKey); sessionID != "" {
		if err := h.sessions.EndSession(c.Request.Context(), sessionID); err != nil {
			h.log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("Failed to end session")
			utils.InternalError(c, "Error logging out")
			return
		}
	}
	middleware.ClearSessionCookie(c, h.cookieName)
	utils.SuccessMessage(c, "Logged out successfully", nil)
}
