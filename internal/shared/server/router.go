package server

import (
	"github.com/gin-gonic/gin"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/meetings"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/config"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/server/middleware"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	MeetingsHandler *meetings.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	root := r.Group("/")
	deps.MeetingsHandler.RegisterRoutes(root)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
