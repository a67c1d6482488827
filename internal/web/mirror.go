package web

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mangashelf/internal/catalog"
)

// MirrorHandler serves the catalog file at path the way the published
// source does. The file is re-read on every request and refused when it
// would not load.
func MirrorHandler(path string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read mirror file", zap.String("path", path), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read catalog file"})
			return
		}
		if _, _, err := catalog.Decode(b); err != nil {
			logger.Error("mirror file does not load", zap.String("path", path), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog file invalid: " + err.Error()})
			return
		}

		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "application/json; charset=utf-8", b)
	}
}

// NewMirrorRouter serves path at /manga_data.json and also at /.
func NewMirrorRouter(path string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(logger), Recovery(logger))
	h := MirrorHandler(path, logger)
	r.GET("/manga_data.json", h)
	r.GET("/", h)
	return r
}
