package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/medicore/hospital-api/pkg/errors"
)

// Error renders err through the shared envelope. Application errors map
// to their HTTP status; anything else becomes an opaque 500.
func Error(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		if appErr.Code == apperrors.ErrInternal {
			log.Error().
				Err(appErr.Unwrap()).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("request_id", c.GetString("request_id")).
				Msg("request failed")
		}
		resp := NewErrorResponse(appErr.Message)
		if len(appErr.Details) > 0 {
			resp.Data = gin.H{"details": appErr.Details}
		}
		c.JSON(appErr.StatusCode(), resp)
		return
	}

	log.Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Str("request_id", c.GetString("request_id")).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, NewErrorResponse("an error occurred"))
}

// ParseID reads a positive integer path parameter
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid id"))
		return 0, false
	}
	return id, true
}
