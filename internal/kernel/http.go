// Package kernel assembles the HTTP handler: global middleware, the
// /metrics endpoint and the API routes.
package kernel

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/hpfoods/hpfoods-api/app/routes"
	"github.com/hpfoods/hpfoods-api/config"
	"github.com/hpfoods/hpfoods-api/pkg/metrics"
	"github.com/hpfoods/hpfoods-api/pkg/middleware"
	"github.com/hpfoods/hpfoods-api/pkg/reqid"
	"github.com/hpfoods/hpfoods-api/pkg/router"
	"github.com/hpfoods/hpfoods-api/pkg/storage"
)

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the router. Global middleware, outermost first:
//
//  1. metrics, so latency covers everything below
//  2. panic recovery
//  3. request id, before anything logs
//  4. access log
//  5. CORS
//  6. per-IP rate limit
func NewHTTPKernel(d routes.Deps) *HTTPKernel {
	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins()...)),
		middleware.RateLimit(config.RateLimitPerMinute(), time.Minute),
	)

	r.Handle("/metrics", "metrics", metrics.Handler())
	routes.RegisterAPI(r, d)

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }

// Images serves the local disk's image directory under /images/.
func Images(d *storage.Local) http.Handler {
	dir := filepath.Join(d.Root(), storage.ImageDir)
	return http.StripPrefix("/"+storage.ImageDir+"/", http.FileServer(http.Dir(dir)))
}
