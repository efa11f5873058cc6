package version

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/smyja/flite/internal/httputil"
)

type Response struct {
	Data Object `json:"data"` // Data object for the version endpoint
}

type Object struct {
	Version   string `json:"version" example:"1.1.0"`     // the running version of the flite backend
	GoVersion string `json:"goVersion" example:"go1.21.5"` // Go release the backend was built with
}

// RegisterRoutes registers the version endpoint. version is the build
// version passed to the linker, "0.0.0" for development builds.
func RegisterRoutes(r *gin.RouterGroup, version string) {
	r.GET("", Get(version))
	r.OPTIONS("", Options)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(version string) gin.HandlerFunc {
	response := Response{
		Data: Object{
			Version:   version,
			GoVersion: runtime.Version(),
		},
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response)
	}
}
