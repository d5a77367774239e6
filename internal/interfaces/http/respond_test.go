package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/supermarket-pro/internal/domain"
	apphttp "github.com/tu-usuario/supermarket-pro/internal/interfaces/http"
)

// errorApp construye una app con una ruta por error de dominio para verificar
// el mapeo error→status sin montar los casos de uso reales.
func errorApp() *fiber.App {
	app := fiber.New()
	fail := func(err error) fiber.Handler {
		return func(c *fiber.Ctx) error { return apphttp.RespondError(c, err) }
	}

	v := &domain.ValidationError{}
	v.Add("name", "requerido")
	v.Add("sku", "requerido")

	app.Get("/validation", fail(v))
	app.Get("/not-found", fail(&domain.NotFoundError{Resource: "product", Key: "p-404"}))
	app.Get("/immutable", fail(&domain.ImmutableFieldError{Field: "sku"}))
	app.Get("/quantity", fail(&domain.InvalidQuantityError{Quantity: -3}))
	app.Get("/transition", fail(&domain.InvalidStateTransitionError{Entity: "purchase_order", From: "DELIVERED", Transition: "cancel"}))
	app.Get("/over-receipt", fail(&domain.OverReceiptError{ItemID: "item-1", Ordered: 10, AlreadyReceived: 8, Requested: 5}))
	app.Get("/duplicate", fail(domain.ErrDuplicate))
	app.Get("/unauthorized", fail(domain.ErrUnauthorized))
	app.Get("/forbidden", fail(domain.ErrForbidden))
	return app
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(body)
}

func TestRespondError_MapeaErroresDeDominio(t *testing.T) {
	app := errorApp()

	cases := []struct {
		path   string
		status int
		code   string
	}{
		{"/validation", http.StatusBadRequest, "VALIDATION"},
		{"/not-found", http.StatusNotFound, "NOT_FOUND"},
		{"/immutable", http.StatusConflict, "IMMUTABLE_FIELD"},
		{"/quantity", http.StatusBadRequest, "INVALID_QUANTITY"},
		{"/transition", http.StatusConflict, "INVALID_TRANSITION"},
		{"/over-receipt", http.StatusConflict, "OVER_RECEIPT"},
		{"/duplicate", http.StatusConflict, "DUPLICATE"},
		{"/unauthorized", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"/forbidden", http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		resp, body := get(t, app, tc.path)
		assert.Equal(t, tc.status, resp.StatusCode, "status para %s", tc.path)
		assert.Contains(t, body, tc.code, "código para %s", tc.path)
	}
}

func TestRespondError_ValidationIncluyeCampos(t *testing.T) {
	app := errorApp()
	_, body := get(t, app, "/validation")

	// Las violaciones por campo viajan en fields[]
	assert.Contains(t, body, `"fields"`)
	assert.Contains(t, body, `"sku"`)
	assert.Contains(t, body, `"name"`)
}
