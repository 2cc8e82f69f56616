package handler

import (
	"github.com/dododo1295/keepnotes/middleware"
	"github.com/dododo1295/keepnotes/services"
	"github.com/dododo1295/keepnotes/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type RouterDeps struct {
	Notes      *usecase.NotesService
	Reminders  *usecase.RemindersService
	Sessions   services.SessionChecker
	Health     map[string]Pinger
	Log        zerolog.Logger
	CORSOrigin string
	CookieName string
	// RequireSession guards the note and reminder routes behind a logged-in session.
	RequireSession bool
	MaxBodyBytes   int64
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Sessions == nil {
		deps.Sessions = services.AnonymousSessions{}
	}
	if deps.CookieName == "" {
		deps.CookieName = "connect.sid"
	}
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = 1 << 20
	}

	router := gin.New()
	router.Use(
		middleware.RequestTracingMiddleware(),
		middleware.RequestLogger(deps.Log),
		middleware.MetricsMiddleware(),
		// Recovery sits inside the logger and metrics so panics are logged and counted as 500s.
		middleware.RecoveryMiddleware(deps.Log),
		middleware.CORSMiddleware(deps.CORSOrigin),
		middleware.RequestSizeLimiter(deps.MaxBodyBytes),
		middleware.SessionMiddleware(deps.Sessions, deps.CookieName, deps.Log),
	)

	health := NewHealthHandler(deps.Health, 0, deps.Log)
	session := NewSessionHandler(deps.Sessions, deps.CookieName, deps.Log)
	notes := NewNotesHandler(deps.Notes, deps.Log)
	reminders := NewRemindersHandler(deps.Reminders, deps.Log)

	// Public routes
	router.GET("/", health.Root)
	router.GET("/health", health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/check-login", session.CheckLogin)
	router.POST("/logout", session.Logout)

	api := router.Group("/", middleware.NoStoreMiddleware())
	if deps.RequireSession {
		api.Use(middleware.RequireSession())
	}
	{
		api.GET("/notes", notes.GetNotes)
		api.POST("/notes", notes.CreateNote)
		api.PATCH("/notes/:id/archive", notes.ArchiveNote)
		api.PATCH("/notes/:id/unarchive", notes.UnarchiveNote)
		api.PATCH("/notes/:id/restore", notes.RestoreNote)
		api.DELETE("/notes/:id", notes.DeleteNote)
		api.GET("/archived-notes", notes.GetArchivedNotes)
		api.GET("/trash", notes.GetTrash)

		api.POST("/reminders", reminders.CreateReminder)
		api.GET("/reminders", reminders.GetReminders)
		api.PATCH("/reminders/:id", reminders.UpdateReminder)
		api.DELETE("/reminders/:id", reminders.DeleteReminder)
	}

	return router
}
