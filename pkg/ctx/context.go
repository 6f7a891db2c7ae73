// Package ctx gives handlers a single *Context instead of the
// (http.ResponseWriter, *http.Request) pair, with helpers that speak the
// API envelope:
//
//	func (c *MenuItemController) Show(x *ctx.Context) {
//	    id, ok := x.ParamUint("id")
//	    ...
//	    x.OK(item)
//	}
//
//	api.Get("/menuitem/{id}", "menuitem.show", ctx.Wrap(menu.Show))
package ctx

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/hpfoods/hpfoods-api/pkg/bind"
	"github.com/hpfoods/hpfoods-api/pkg/response"
	"github.com/hpfoods/hpfoods-api/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap adapts a HandlerFunc to http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps one request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a path parameter as an unsigned id.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// Query returns a query-string value, or "".
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// FormValue returns a multipart or urlencoded form field.
func (c *Context) FormValue(key string) string {
	return c.R.FormValue(key)
}

func (c *Context) Header(key string) string { return c.R.Header.Get(key) }

// Context returns the request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// ─── Binding ──────────────────────────────────────────────────────────────────

// BindJSON decodes and validates the JSON body into dest. On failure it has
// already written a 400 envelope and returns false.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// Validate runs tag validation on an already populated struct. On failure it
// has already written a 400 envelope and returns false.
func (c *Context) Validate(v any) bool {
	if errs := validate.Struct(v); validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

func (c *Context) SetHeader(key, value string) {
	c.W.Header().Set(key, value)
}

func (c *Context) OK(result any) {
	c.status = http.StatusOK
	response.OK(c.W, result)
}

func (c *Context) Created(result any) {
	c.status = http.StatusCreated
	response.Created(c.W, result)
}

// Fail writes the envelope for a service error.
func (c *Context) Fail(err error) {
	rec := &statusRecorder{ResponseWriter: c.W}
	response.Fail(rec, c.R, err)
	c.status = rec.status
}

func (c *Context) Error(code int, messages ...string) {
	c.status = code
	response.Error(c.W, code, messages...)
}

func (c *Context) ValidationError(errs map[string]string) {
	c.status = http.StatusBadRequest
	response.ValidationError(c.W, errs)
}

func (c *Context) Unauthorized() {
	c.status = http.StatusUnauthorized
	response.Unauthorized(c.W)
}

func (c *Context) Forbidden() {
	c.status = http.StatusForbidden
	response.Forbidden(c.W)
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
