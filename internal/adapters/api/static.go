package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"catalogapi.app/internal/ports"
	"github.com/gin-gonic/gin"
)

// setupFrontend serves the built client bundle. Unmatched GETs outside
// /api/ get index.html so client-side routes survive a reload.
func (s *HTTPServerAdapter) setupFrontend() {
	dir := s.config.FrontendDir
	index := filepath.Join(dir, "index.html")
	s.logger.Info("Serving frontend bundle", ports.F("dir", dir))

	s.router.NoRoute(func(c *gin.Context) {
		requestPath := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || strings.HasPrefix(requestPath, "/api/") {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
			return
		}

		if asset, ok := staticAsset(dir, requestPath); ok {
			s.serveBundleFile(c, asset)
			return
		}
		s.serveBundleFile(c, index)
	})
}

// serveBundleFile writes an already resolved file. http.ServeFile is not
// used because it rejects raw request paths containing "..".
func (s *HTTPServerAdapter) serveBundleFile(c *gin.Context, name string) {
	file, err := os.Open(name)
	if err != nil {
		s.logger.Error("Failed to open frontend file", ports.F("file", name), ports.F("error", err))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), file)
}

// staticAsset maps a URL path onto a regular file inside dir
func staticAsset(dir, urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}
	candidate := filepath.Join(dir, filepath.FromSlash(clean))
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return "", false
	}
	return candidate, true
}
