package middleware

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Static serves GET and HEAD requests that name a file under dir and
// passes everything else on.
func Static(dir string) gin.HandlerFunc {
	root := filepath.Clean(dir)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}

		name := filepath.Join(root, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
		info, err := os.Stat(name)
		if err != nil || info.IsDir() {
			c.Next()
			return
		}

		c.File(name)
		c.Abort()
	}
}
