package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/hpfoods/hpfoods-api/app/services"
	"github.com/hpfoods/hpfoods-api/pkg/bind"
	"github.com/hpfoods/hpfoods-api/pkg/ctx"
)

// URLBuilder resolves a named route to a path.
type URLBuilder interface {
	URL(name string, params map[string]string) (string, error)
}

type MenuItemController struct {
	service *services.MenuService
	urls    URLBuilder
}

func NewMenuItemController(service *services.MenuService, urls URLBuilder) *MenuItemController {
	return &MenuItemController{service: service, urls: urls}
}

func (c *MenuItemController) Index(x *ctx.Context) {
	items, err := c.service.List(x.Context())
	if err != nil {
		x.Fail(err)
		return
	}
	x.OK(items)
}

func (c *MenuItemController) Show(x *ctx.Context) {
	id, ok := x.ParamUint("id")
	if !ok {
		x.Error(http.StatusBadRequest, "Invalid menu item id")
		return
	}
	item, err := c.service.Get(x.Context(), id)
	if err != nil {
		x.Fail(err)
		return
	}
	x.OK(item)
}

// Store handles POST /api/menuitem as multipart/form-data.
func (c *MenuItemController) Store(x *ctx.Context) {
	in, up, closeFile, ok := c.readForm(x)
	if !ok {
		return
	}
	defer closeFile()

	item, err := c.service.Create(x.Context(), in, up)
	if err != nil {
		x.Fail(err)
		return
	}

	id := strconv.FormatUint(uint64(item.ID), 10)
	if loc, err := c.urls.URL("menuitem.show", map[string]string{"id": id}); err == nil {
		x.SetHeader("Location", loc)
	}
	x.Created(item)
}

// Update handles PUT /api/menuitem/{id}. The form's id must equal the
// path id.
func (c *MenuItemController) Update(x *ctx.Context) {
	id, ok := x.ParamUint("id")
	if !ok {
		x.Error(http.StatusBadRequest, "Invalid menu item id")
		return
	}
	in, up, closeFile, ok := c.readForm(x)
	if !ok {
		return
	}
	defer closeFile()

	item, err := c.service.Update(x.Context(), id, in, up)
	if err != nil {
		x.Fail(err)
		return
	}
	x.OK(item)
}

func (c *MenuItemController) Destroy(x *ctx.Context) {
	id, ok := x.ParamUint("id")
	if !ok {
		x.Error(http.StatusBadRequest, "Invalid menu item id")
		return
	}
	if err := c.service.Delete(x.Context(), id); err != nil {
		x.Fail(err)
		return
	}
	x.OK(nil)
}

// readForm parses the multipart body. On failure it has written a 400.
func (c *MenuItemController) readForm(x *ctx.Context) (services.MenuItemInput, *services.Upload, func(), bool) {
	var in services.MenuItemInput
	noop := func() {}

	if err := bind.Multipart(x.R); err != nil {
		x.Error(http.StatusBadRequest, err.Error())
		return in, nil, noop, false
	}

	errs := map[string]string{}
	in.Name = strings.TrimSpace(x.FormValue("name"))
	in.Description = x.FormValue("description")
	in.SpecialTag = x.FormValue("specialTag")
	in.Category = x.FormValue("category")

	if v := strings.TrimSpace(x.FormValue("price")); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs["price"] = "The price must be a number."
		}
		in.Price = p
	}
	if v := strings.TrimSpace(x.FormValue("id")); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs["id"] = "The id must be a number."
		}
		in.ID = uint(n)
	}
	if len(errs) > 0 {
		x.ValidationError(errs)
		return in, nil, noop, false
	}

	f, h, err := bind.File(x.R, "file")
	if err != nil {
		x.Error(http.StatusBadRequest, "Invalid file upload")
		return in, nil, noop, false
	}
	if f == nil {
		return in, nil, noop, true
	}
	return in, upload(f, h), func() { f.Close() }, true
}

func upload(f multipart.File, h *multipart.FileHeader) *services.Upload {
	return &services.Upload{Filename: h.Filename, Size: h.Size, Body: f}
}
