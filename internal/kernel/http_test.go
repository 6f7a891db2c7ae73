package kernel_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpfoods/hpfoods-api/app/routes"
	"github.com/hpfoods/hpfoods-api/internal/kernel"
	"github.com/hpfoods/hpfoods-api/pkg/reqid"
	"github.com/hpfoods/hpfoods-api/pkg/testkit"
)

func TestMetricsEndpointAndRequestID(t *testing.T) {
	h := kernel.NewHTTPKernel(routes.Deps{}).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hpfoods_http_requests_in_flight")
	assert.NotEmpty(t, rec.Header().Get(reqid.Header))
}

func TestPreflightIsAnswered(t *testing.T) {
	h := kernel.NewHTTPKernel(routes.Deps{}).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/menuitem", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestRoutesListsAPI(t *testing.T) {
	k := kernel.NewHTTPKernel(routes.Deps{})

	var found bool
	for _, ri := range k.Routes() {
		if ri.Name == "menuitem.index" {
			found = true
			assert.Equal(t, "/api/menuitem", ri.Path)
		}
	}
	assert.True(t, found)
}

func TestImagesServesLocalDisk(t *testing.T) {
	disk := testkit.Disk(t)
	dir := filepath.Join(disk.Root(), "images")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "samosa.jpg"), []byte("img"), 0o644))

	rec := httptest.NewRecorder()
	kernel.Images(disk).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/samosa.jpg", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "img", rec.Body.String())
}
