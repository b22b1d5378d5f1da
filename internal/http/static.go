package http

import (
	"io/fs"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// StaticFileConfig represents configuration for static file serving
type StaticFileConfig struct {
	URLPath      string // URL path to serve files from
	FS           fs.FS  // Files to serve, rooted at URLPath
	CacheControl string // Optional Cache-Control header value
}

// ServeStaticFiles configures static file serving for the router
func ServeStaticFiles(router gin.IRoutes, configs []StaticFileConfig) {
	for _, config := range configs {
		fileServer := http.StripPrefix(config.URLPath, http.FileServer(http.FS(config.FS)))
		cacheControl := config.CacheControl

		handler := func(c *gin.Context) {
			if path.Clean(c.Param("path")) == "/" {
				c.Status(http.StatusNotFound)
				return
			}
			if cacheControl != "" {
				c.Header("Cache-Control", cacheControl)
			}
			fileServer.ServeHTTP(c.Writer, c.Request)
		}

		router.GET(config.URLPath+"/*path", handler)
		router.HEAD(config.URLPath+"/*path", handler)
	}
}
