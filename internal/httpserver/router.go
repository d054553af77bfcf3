package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CartHandler    *CartHTTP
	CatalogHandler *CatalogHTTP
	SearchHandler  *SearchHTTP
	Sessions       *SessionMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/logout", d.AuthHandler.Logout)

	api := e.Group("/api")
	api.GET("/check-session", d.AuthHandler.CheckSession)
	api.POST("/auto-logout", d.AuthHandler.AutoLogout)

	api.GET("/products", d.CatalogHandler.GetProducts)
	api.GET("/products/:category", d.CatalogHandler.GetProductsByCategory)
	if d.SearchHandler != nil {
		api.GET("/search", d.SearchHandler.Search)
	}

	cart := api.Group("/cart", d.Sessions.RequireSession)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/add", d.CartHandler.AddToCart)
	cart.PUT("/update", d.CartHandler.UpdateCart)
	cart.DELETE("/remove", d.CartHandler.RemoveFromCart)
	cart.DELETE("/clear", d.CartHandler.ClearCart)
}
