package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/villagecraft/storefront/internal/logging"
	"github.com/villagecraft/storefront/internal/service"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.list")

	products, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return serverError(c)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"products": products,
	})
}

func (h *CatalogHTTP) GetProductsByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.category")

	category := c.Param("category")
	products, err := h.Svc.ListByCategory(ctx, category)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("unknown_category", "status", 404, "category", category)
			return c.JSON(http.StatusNotFound, echo.Map{
				"success": false,
				"message": "Unknown category",
			})
		}
		l.Error("get_products_by_category_error", "status", 500, "error", err)
		return serverError(c)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"products": products,
	})
}
