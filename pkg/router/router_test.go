package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ecobazaar/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func fire(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRoutesAndMethods(t *testing.T) {
	r := router.New()
	r.Get("/items", "items.list", ok)
	r.Post("/items", "items.create", ok)
	r.Put("/items/{id}", "items.update", ok)
	r.Delete("/items/{id}", "items.delete", ok)

	h := r.Handler()
	assert.Equal(t, http.StatusOK, fire(h, http.MethodGet, "/items").Code)
	assert.Equal(t, http.StatusOK, fire(h, http.MethodPost, "/items").Code)
	assert.Equal(t, http.StatusOK, fire(h, http.MethodPut, "/items/7").Code)
	assert.Equal(t, http.StatusOK, fire(h, http.MethodDelete, "/items/7").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, fire(h, http.MethodPatch, "/items").Code)
	assert.Equal(t, http.StatusNotFound, fire(h, http.MethodGet, "/missing").Code)

	infos := r.Routes()
	require.Len(t, infos, 4)
	assert.Equal(t, "items.list", infos[0].Name)
	assert.Equal(t, "/items", infos[0].Path)
}

func TestGroupsNestAndPrefix(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	admin := api.Group("/admin")
	admin.Get("/dashboard", "admin.dashboard", ok)

	h := r.Handler()
	assert.Equal(t, http.StatusOK, fire(h, http.MethodGet, "/api/admin/dashboard").Code)
	assert.Equal(t, http.StatusNotFound, fire(h, http.MethodGet, "/admin/dashboard").Code)

	path, found := r.Path("admin.dashboard")
	require.True(t, found)
	assert.Equal(t, "/api/admin/dashboard", path)
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	outer := r.Group("/outer", tag("outer"))
	inner := outer.Group("/inner", tag("inner"))
	inner.Get("/leaf", "leaf", ok, tag("route"))

	fire(r.Handler(), http.MethodGet, "/outer/inner/leaf")
	assert.Equal(t, []string{"outer", "inner", "route"}, order)
}

func TestURL(t *testing.T) {
	r := router.New()
	r.Get("/users/{id}/orders/{orderId}", "users.orders.show", ok)

	url, err := r.URL("users.orders.show", map[string]string{"id": "3", "orderId": "9"})
	require.NoError(t, err)
	assert.Equal(t, "/users/3/orders/9", url)

	_, err = r.URL("users.orders.show", map[string]string{"id": "3"})
	assert.Error(t, err, "missing params must not build a URL")

	_, err = r.URL("unknown", nil)
	assert.Error(t, err)
}
