package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"task-market.com/task-market/internal/events"
)

// StreamRoom pushes a room's events to the caller as server-sent
// events. Delivery is best effort: a client that reconnects re-fetches
// message history instead of assuming it missed nothing.
func (h *Handler) StreamRoom(bus *events.Bus) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := callerID(c)
		if err != nil {
			return err
		}
		roomID := c.Param("id")

		// membership gate before any streaming starts
		if _, err := h.chat.Memberships(c.Request().Context(), roomID, userID); err != nil {
			return httpError(err)
		}

		c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
		c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
		c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
		c.Response().Header().Set("X-Accel-Buffering", "no")

		flusher, ok := c.Response().Writer.(http.Flusher)
		if !ok {
			return c.String(http.StatusInternalServerError, "stream unsupported")
		}
		c.Response().WriteHeader(http.StatusOK)
		flusher.Flush()

		ch := make(chan events.Event, 16)
		unsubscribe := bus.Subscribe(events.RoomTopic(roomID), func(ev events.Event) {
			select {
			case ch <- ev:
			default:
			}
		})
		defer unsubscribe()

		ctx := c.Request().Context()
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-ch:
				data, err := json.Marshal(ev)
				if err != nil {
					c.Logger().Error(err)
					continue
				}
				if _, err := c.Response().Write([]byte("data: ")); err != nil {
					return nil
				}
				if _, err := c.Response().Write(data); err != nil {
					return nil
				}
				if _, err := c.Response().Write([]byte("\n\n")); err != nil {
					return nil
				}
				flusher.Flush()
			}
		}
	}
}
