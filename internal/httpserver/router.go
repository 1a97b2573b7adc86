package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jfuenzalida/restaurante-backend/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	ReportHandler  *ReportHTTP
	SearchHandler  *SearchHTTP
	AuthMW         *auth.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/auth/register", d.AuthHandler.Register)
	api.POST("/auth/login", d.AuthHandler.Login)
	api.POST("/auth/logout", d.AuthHandler.Logout)
	api.GET("/auth/me", d.AuthHandler.Me, d.AuthMW.RequireLogin)

	api.GET("/productos", d.CatalogHandler.ListProducts)
	api.GET("/productos/:id", d.CatalogHandler.GetProduct)
	api.GET("/categorias", d.CatalogHandler.ListCategories)
	api.GET("/search", d.SearchHandler.Search)

	staffCatalog := api.Group("", d.AuthMW.RequireStaff)
	staffCatalog.POST("/productos", d.CatalogHandler.CreateProduct)
	staffCatalog.PATCH("/productos/:id", d.CatalogHandler.PatchProduct)
	staffCatalog.DELETE("/productos/:id", d.CatalogHandler.DeleteProduct)
	staffCatalog.PATCH("/productos/:id/toggle_availability", d.CatalogHandler.ToggleAvailability)
	staffCatalog.POST("/categorias", d.CatalogHandler.CreateCategory)

	cart := api.Group("/carrito", d.AuthMW.RequireLogin)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/items", d.CartHandler.AddItem)
	cart.PATCH("/items/:id", d.CartHandler.UpdateItem)
	cart.DELETE("/items/:id", d.CartHandler.RemoveItem)
	cart.POST("/clear", d.CartHandler.Clear)

	orders := api.Group("/pedidos")
	orders.GET("", d.OrderHandler.ListMine, d.AuthMW.RequireLogin)
	orders.POST("", d.OrderHandler.Checkout, d.AuthMW.RequireLogin)
	orders.GET("/active", d.OrderHandler.ListActive, d.AuthMW.RequireStaff)
	orders.GET("/dispatch", d.OrderHandler.ListDispatch, d.AuthMW.RequireStaff)
	orders.PATCH("/:id/status", d.OrderHandler.SetStatus, d.AuthMW.RequireStaff)

	api.GET("/reportes/stats", d.ReportHandler.GetStats, d.AuthMW.RequireStaff)
}
