package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/smyja/flite/internal/auth"
	"github.com/smyja/flite/internal/httputil"
	"github.com/smyja/flite/internal/models"
)

// Registration is the body for a new user
type Registration struct {
	Username string `json:"username" validate:"required,min=3,max=150,username" example:"ada"`         // Name to log in with
	Password string `json:"password" validate:"required,min=8,max=72" example:"correct horse battery"` // Password of the user
}

// Credentials are used to obtain a token
type Credentials struct {
	Username string `json:"username" validate:"required" example:"ada"`
	Password string `json:"password" validate:"required" example:"correct horse battery"`
}

type Token struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // Token to send in the Authorization header
	ExpiresAt time.Time `json:"expiresAt" example:"2024-03-02T10:00:00Z"`                // Time the token expires
}

// RegisterAuthRoutes registers the routes for registration and login with
// the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup, issuer *auth.Issuer, bcryptCost int) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", Register(bcryptCost))

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", Login(issuer))
}

// Register creates users, hashing their passwords with the bcrypt cost.
//
//	@Summary		Register
//	@Description	Creates a new user
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		201				{object}	User
//	@Failure		400				{object}	httputil.FieldErrors
//	@Failure		500				{object}	httputil.HTTPError
//	@Param			registration	body		Registration	true	"Registration"
//	@Router			/v1/auth/register [post]
func Register(bcryptCost int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var registration Registration
		err := httputil.DecodeFields(c, &registration)
		if err != nil {
			abortWithError(c, err)
			return
		}

		user := models.User{Username: registration.Username}
		err = user.SetPassword(registration.Password, bcryptCost)
		if err != nil {
			abortWithError(c, err)
			return
		}

		err = models.DB.Create(&user).Error
		if errors.Is(err, models.ErrUsernameNotUnique) {
			abortWithError(c, httputil.FieldErrors{"username": {messageUsernameTaken}})
			return
		} else if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusCreated, newUser(user, decimal.Zero))
	}
}

// Login issues tokens for users with valid credentials.
//
//	@Summary		Login
//	@Description	Returns a token for the user
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	Token
//	@Failure		400			{object}	httputil.FieldErrors
//	@Failure		401			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			credentials	body		Credentials	true	"Credentials"
//	@Router			/v1/auth/login [post]
func Login(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var credentials Credentials
		err := httputil.DecodeFields(c, &credentials)
		if err != nil {
			abortWithError(c, err)
			return
		}

		var user models.User
		err = models.DB.First(&user, "username = ?", credentials.Username).Error
		if errors.Is(err, models.ErrResourceNotFound) {
			abortWithError(c, auth.ErrInvalidCredentials)
			return
		} else if err != nil {
			abortWithError(c, err)
			return
		}

		err = user.CheckPassword(credentials.Password)
		if errors.Is(err, models.ErrInvalidPassword) {
			abortWithError(c, auth.ErrInvalidCredentials)
			return
		} else if err != nil {
			abortWithError(c, err)
			return
		}

		token, expiresAt, err := issuer.Issue(user)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, Token{
			Token:     token,
			ExpiresAt: expiresAt,
		})
	}
}
