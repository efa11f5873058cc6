package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/smyja/flite/internal/httputil"
	"github.com/smyja/flite/internal/models"
)

const userKey = "flite-user"

// Schemes accepted in the Authorization header.
var schemes = []string{"Bearer", "Token"}

// Required authenticates every request with the token in its
// Authorization header. Requests without a valid token for an
// existing user are aborted with 401.
func Required(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := credentials(c.GetHeader("Authorization"))
		if err != nil {
			unauthorized(c, err)
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("Rejected token")
			unauthorized(c, ErrInvalidToken)
			return
		}

		var user models.User
		err = models.DB.First(&user, "id = ?", claims.UserID).Error
		if errors.Is(err, models.ErrResourceNotFound) {
			unauthorized(c, ErrInvalidToken)
			return
		} else if err != nil {
			httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user authenticated by Required.
func CurrentUser(c *gin.Context) models.User {
	return c.MustGet(userKey).(models.User)
}

// credentials extracts the token from an Authorization header.
func credentials(header string) (string, error) {
	if header == "" {
		return "", ErrMissingCredentials
	}

	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", ErrInvalidToken
	}

	for _, s := range schemes {
		if strings.EqualFold(s, scheme) {
			return token, nil
		}
	}

	return "", ErrInvalidToken
}

func unauthorized(c *gin.Context, err error) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	httputil.NewError(c, http.StatusUnauthorized, err)
}
