package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smyja/flite/internal/httputil"
	"github.com/smyja/flite/internal/models"
)

type Response struct {
	Name  string `json:"name" example:"flite"` // Name of the service
	Links Links  `json:"links"`
}

type Links struct {
	Docs     string `json:"docs" example:"https://example.com/api/docs/index.html"`        // Swagger API documentation
	Healthz  string `json:"healthz" example:"https://example.com/api/healthz"`             // Healthz endpoint
	Version  string `json:"version" example:"https://example.com/api/version"`             // Endpoint returning the version of the backend
	Metrics  string `json:"metrics" example:"https://example.com/api/metrics"`             // Endpoint returning Prometheus metrics
	Pprof    string `json:"pprof,omitempty" example:"https://example.com/api/debug/pprof"` // Runtime profiles, only listed when profiling is enabled
	Register string `json:"register" example:"https://example.com/api/v1/auth/register"`   // Creates a new user
	Login    string `json:"login" example:"https://example.com/api/v1/auth/login"`         // Exchanges credentials for a token
	V1       string `json:"v1" example:"https://example.com/api/v1"`                       // List endpoint for all v1 endpoints
}

// RegisterRoutes registers the API root. The pprof link is only
// listed when the profiling endpoints are mounted.
func RegisterRoutes(r *gin.RouterGroup, pprof bool) {
	r.GET("", Get(pprof))
	r.OPTIONS("", Options)
}

// links returns the entry points of the API below url.
func links(url string, pprof bool) Links {
	l := Links{
		Docs:     url + "/docs/index.html",
		Healthz:  url + "/healthz",
		Version:  url + "/version",
		Metrics:  url + "/metrics",
		Register: url + "/v1/auth/register",
		Login:    url + "/v1/auth/login",
		V1:       url + "/v1",
	}

	if pprof {
		l.Pprof = url + "/debug/pprof"
	}
	return l
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints
// @Tags			General
// @Success		200	{object}	Response
// @Router			/ [get]
func Get(pprof bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Name:  "flite",
			Links: links(c.GetString(string(models.DBContextURL)), pprof),
		})
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
