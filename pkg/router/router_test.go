package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpfoods/hpfoods-api/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestGroupsJoinPrefixesAndMiddleware(t *testing.T) {
	r := router.New()

	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, req)
			})
		}
	}

	api := r.Group("/api", tag("api"))
	admin := api.Group("admin/", tag("admin"))
	admin.Delete("/menuitem/{id}", "admin.menuitem.delete", ok, tag("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/menuitem/3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"api", "admin", "route"}, order)
}

func TestURLForNamedRoute(t *testing.T) {
	r := router.New()
	r.Group("/api").Get("/order/{id}", "order.show", ok)

	url, err := r.URL("order.show", map[string]string{"id": "12"})
	require.NoError(t, err)
	assert.Equal(t, "/api/order/12", url)

	_, err = r.URL("order.show", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestRoutesAreSorted(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Put("/menuitem/{id}", "menuitem.update", ok)
	api.Get("/menuitem", "menuitem.index", ok)
	api.Post("/menuitem", "menuitem.store", ok)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, router.RouteInfo{Method: http.MethodGet, Path: "/api/menuitem", Name: "menuitem.index"}, routes[0])
	assert.Equal(t, http.MethodPost, routes[1].Method)
	assert.Equal(t, "/api/menuitem/{id}", routes[2].Path)
}
