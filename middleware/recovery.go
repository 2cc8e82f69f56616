package middleware

import (
	"fmt"
	"net/http"

	"github.com/dododo1295/keepnotes/utils"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func RecoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				log.Error().
					Stack().
					Err(errors.WithStack(err)).
					Str("request_id", c.GetString(RequestIDKey)).
					Str("path", c.Request.URL.Path).
					Msg("Recovered from panic")
				utils.TrackError("panic", c.FullPath())

				c.AbortWithStatusJSON(http.StatusInternalServerError, &utils.Response{
					Status: http.StatusInternalServerError,
					Error:  "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
