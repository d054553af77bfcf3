package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/villagecraft/storefront/internal/logging"
	"github.com/villagecraft/storefront/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	cart, err := h.Svc.Get(ctx, session.User.ID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return serverError(c)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"cart":    cart,
	})
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	cart, err := h.Svc.Add(ctx, session.User.ID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("add_to_cart_not_found", "status", 404, "product_id", req.ProductID)
			return c.JSON(http.StatusNotFound, echo.Map{
				"success": false,
				"message": "Product not found",
			})
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return serverError(c)
	}

	l.Info("cart_item_added", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Product added to cart",
		"cart":    cart,
	})
}

func (h *CartHTTP) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.UpdateQuantity(ctx, session.User.ID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_cart_not_found", "status", 404, "product_id", req.ProductID)
			return c.JSON(http.StatusNotFound, echo.Map{
				"success": false,
				"message": "Item not found in cart",
			})
		}
		l.Error("update_cart_error", "status", 500, "error", err)
		return serverError(c)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Cart updated",
		"cart":    cart,
	})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	// Removing an absent item still reports success.
	cart, err := h.Svc.Remove(ctx, session.User.ID, req.ProductID)
	if err != nil {
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return serverError(c)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Item removed from cart",
		"cart":    cart,
	})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	session, ok := sessionFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.Svc.Clear(ctx, session.User.ID); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return serverError(c)
	}

	l.Info("cart_cleared")
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Cart cleared",
	})
}

func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"success": false,
		"message": "Server error",
	})
}
