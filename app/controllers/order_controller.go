package controllers

import (
	"net/http"
	"strconv"

	"github.com/hpfoods/hpfoods-api/app/services"
	"github.com/hpfoods/hpfoods-api/pkg/ctx"
)

type OrderController struct {
	service *services.OrderService
	urls    URLBuilder
}

func NewOrderController(service *services.OrderService, urls URLBuilder) *OrderController {
	return &OrderController{service: service, urls: urls}
}

// Index handles GET /api/order?userId=.
func (c *OrderController) Index(x *ctx.Context) {
	orders, err := c.service.ListOrders(x.Context(), x.Query("userId"))
	if err != nil {
		x.Fail(err)
		return
	}
	x.OK(orders)
}

func (c *OrderController) Show(x *ctx.Context) {
	id, ok := x.ParamUint("id")
	if !ok {
		x.Error(http.StatusBadRequest, "Invalid order ID")
		return
	}
	order, err := c.service.GetOrder(x.Context(), id)
	if err != nil {
		x.Fail(err)
		return
	}
	x.OK(order)
}

func (c *OrderController) Store(x *ctx.Context) {
	var in services.OrderInput
	if !x.BindJSON(&in) {
		return
	}
	order, err := c.service.CreateOrder(x.Context(), in)
	if err != nil {
		x.Fail(err)
		return
	}

	id := strconv.FormatUint(uint64(order.ID), 10)
	if loc, err := c.urls.URL("order.show", map[string]string{"id": id}); err == nil {
		x.SetHeader("Location", loc)
	}
	x.Created(order)
}
