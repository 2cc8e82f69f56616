package handler

import (
	"errors"
	"net/http"

	"github.com/dododo1295/keepnotes/apperr"
	"github.com/dododo1295/keepnotes/middleware"
	"github.com/dododo1295/keepnotes/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError maps an error kind to its HTTP status. Storage and unknown
// errors are logged with their cause and answered with the generic fallback.
func respondError(c *gin.Context, log zerolog.Logger, err error, fallback string) {
	switch {
	case apperr.IsNotFound(err):
		utils.NotFound(c, err.Error())
	case apperr.IsValidation(err):
		utils.BadRequest(c, err.Error())
	default:
		log.Error().
			Stack().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("route", c.FullPath()).
			Msg(fallback)
		utils.TrackError("handler", c.FullPath())
		utils.InternalError(c, fallback)
	}
}

// respondBindError answers a body that failed to decode. A body cut off by
// the size limit is a 413, anything else a 400.
func respondBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.RequestTooLarge(c)
		return
	}
	utils.BadRequest(c, "Invalid request body")
}
