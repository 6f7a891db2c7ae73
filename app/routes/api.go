package routes

import (
	"net/http"

	"github.com/hpfoods/hpfoods-api/app/controllers"
	"github.com/hpfoods/hpfoods-api/app/models"
	"github.com/hpfoods/hpfoods-api/app/services"
	"github.com/hpfoods/hpfoods-api/pkg/ctx"
	"github.com/hpfoods/hpfoods-api/pkg/middleware"
	"github.com/hpfoods/hpfoods-api/pkg/rbac"
	"github.com/hpfoods/hpfoods-api/pkg/router"
)

// Deps carries everything the routes call into. Nil handlers are mounted
// as 404 so the route table stays complete for route:list.
type Deps struct {
	Auth   *services.AuthService
	Menu   *services.MenuService
	Orders *services.OrderService

	// Secret verifies bearer tokens.
	Secret string

	GraphQL   http.Handler
	OrderFeed http.Handler
	// Images serves the local disk's images/ directory; nil when images
	// live on S3.
	Images http.Handler
}

func RegisterAPI(r *router.Router, d Deps) {
	authn := middleware.Authenticate(d.Secret)
	admin := rbac.HasRole(models.RoleAdmin)

	authController := controllers.NewAuthController(d.Auth)
	menuController := controllers.NewMenuItemController(d.Menu, r)
	orderController := controllers.NewOrderController(d.Orders, r)

	api := r.Group("/api")

	api.Post("/auth/register", "auth.register", ctx.Wrap(authController.Register))
	api.Post("/auth/login", "auth.login", ctx.Wrap(authController.Login))

	protected := api.Group("/authtest", authn)
	protected.Get("/", "authtest", ctx.Wrap(controllers.AuthTest))
	protected.Get("/{id}", "authtest.admin", ctx.Wrap(controllers.AuthTestAdmin), admin)

	api.Get("/menuitem", "menuitem.index", ctx.Wrap(menuController.Index))
	api.Get("/menuitem/{id}", "menuitem.show", ctx.Wrap(menuController.Show))
	api.Post("/menuitem", "menuitem.store", ctx.Wrap(menuController.Store))
	api.Put("/menuitem/{id}", "menuitem.update", ctx.Wrap(menuController.Update))
	api.Delete("/menuitem/{id}", "menuitem.destroy", ctx.Wrap(menuController.Destroy))

	api.Get("/order", "order.index", ctx.Wrap(orderController.Index))
	api.Get("/order/{id}", "order.show", ctx.Wrap(orderController.Show))
	api.Post("/order", "order.store", ctx.Wrap(orderController.Store))

	r.Handle("/api/graphql", "graphql", orNotFound(d.GraphQL))
	r.Handle("/ws/orders", "ws.orders", authn(admin(orNotFound(d.OrderFeed))))

	if d.Images != nil {
		r.Handle("/images/*", "images", d.Images)
	}
}

func orNotFound(h http.Handler) http.Handler {
	if h == nil {
		return http.NotFoundHandler()
	}
	return h
}
