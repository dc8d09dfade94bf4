package http

import (
	"time"

	"github.com/labstack/echo/v4"

	"task-market.com/task-market/internal/events"
	middleware "task-market.com/task-market/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, bus *events.Bus, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks", h.ListOpenTasks)
	e.GET("/tasks/:id", h.GetTask)
	e.POST("/tasks/:id/claim", h.ClaimTask)
	e.POST("/tasks/:id/cancel", h.CancelTask)
	e.POST("/tasks/:id/status", h.AdvanceStatus)
	e.GET("/tasks/:id/history", h.GetStatusHistory)
	e.POST("/tasks/:id/room", h.EnsureRoom)

	e.GET("/rooms/:id/messages", h.ListMessages)
	e.POST("/rooms/:id/messages", h.SendMessage)
	e.POST("/rooms/:id/read", h.MarkRead)
	e.GET("/rooms/:id/stream", h.StreamRoom(bus))
}
