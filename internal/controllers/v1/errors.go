package v1

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/smyja/flite/internal/auth"
	"github.com/smyja/flite/internal/httputil"
	"github.com/smyja/flite/internal/models"
	"github.com/smyja/flite/internal/uuid"
)

var errInvalidExportFormat = errors.New("the format parameter must be one of: csv, xlsx")

// messageUsernameTaken is the validation message for a username
// that is already registered.
const messageUsernameTaken = "A user with that username already exists."

// status returns the HTTP status code for an error.
func status(err error) int {
	var fieldErrors httputil.FieldErrors

	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError

	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound

	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.As(err, &fieldErrors),
		errors.Is(err, httputil.ErrInvalidBody),
		errors.Is(err, httputil.ErrRequestBodyEmpty),
		errors.Is(err, httputil.ErrInvalidQueryString),
		errors.Is(err, httputil.ErrInvalidUUID),
		errors.Is(err, uuid.ErrInvalid),
		errors.Is(err, errInvalidExportFormat):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// abortWithError ends the request with the response for the error.
//
// Validation errors are sent as a map of field names to messages, all other
// errors as httputil.HTTPError. Unexpected errors are logged and replaced with
// models.ErrGeneral so that no internals are leaked to the client.
func abortWithError(c *gin.Context, err error) {
	code := status(err)

	var fieldErrors httputil.FieldErrors
	if errors.As(err, &fieldErrors) {
		c.AbortWithStatusJSON(code, fieldErrors)
		return
	}

	if code == http.StatusInternalServerError && !errors.Is(err, models.ErrGeneral) {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		err = models.ErrGeneral
	}

	httputil.NewError(c, code, err)
}
