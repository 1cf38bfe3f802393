package handlers

import "github.com/labstack/echo/v4"

// Register mounts the pages and the read API.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/", h.Index)
	e.GET("/history/:date", h.Day)
	e.GET("/monthly/:year/:month", h.Monthly)

	api := e.Group("/api")
	api.GET("/dates", h.APIDates)
	api.GET("/months", h.APIMonths)
	api.GET("/history/:date", h.APIDay)
	api.GET("/history/:year/:month", h.APIMonth)
}

// Register mounts the admin collection endpoints.
func (h *IngestHandler) Register(e *echo.Echo) {
	admin := e.Group("/admin")
	admin.POST("/collect", h.Collect)
	admin.GET("/collect/status", h.Status)
}
