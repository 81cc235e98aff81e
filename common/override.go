package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MethodOverride lets HTML forms issue PUT and DELETE requests through a
// `_method` form field or query parameter. Only POST requests may be
// overridden, and only to PUT or DELETE. The request is re-dispatched
// through the engine so it reaches the route registered for the real method.
func MethodOverride(router *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		method := c.PostForm("_method")
		if method == "" {
			method = c.Query("_method")
		}

		switch method {
		case http.MethodPut, http.MethodDelete:
			c.Request.Method = method
			router.HandleContext(c)
			c.Abort()
		default:
			c.Next()
		}
	}
}
