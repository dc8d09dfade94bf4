package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"task-market.com/task-market/internal/constants"
	dto "task-market.com/task-market/internal/data_models"
	apperrors "task-market.com/task-market/internal/errors"
	"task-market.com/task-market/internal/http/validators"
	repository "task-market.com/task-market/internal/repositories"
	"task-market.com/task-market/internal/services"
)

// userHeader carries the already-authenticated caller identity; an
// auth layer in front of this service is expected to have set it.
const userHeader = "X-User-ID"

type Handler struct {
	tasks *services.TaskService
	chat  *services.ChatService
}

func NewHandler(tasks *services.TaskService, chat *services.ChatService) *Handler {
	return &Handler{
		tasks: tasks,
		chat:  chat,
	}
}

func callerID(c echo.Context) (string, error) {
	id := c.Request().Header.Get(userHeader)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing "+userHeader+" header")
	}
	return id, nil
}

func httpError(err error) error {
	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
}

func intQuery(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func (h *Handler) CreateTask(c echo.Context) error {
	posterID, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), repository.TaskSpec{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Store:           req.Store,
		DropoffLocation: req.DropoffLocation,
		Urgency:         req.Urgency,
		RewardAmount:    req.RewardAmount,
		EstimatedMins:   req.EstimatedMins,
	}, posterID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) ListOpenTasks(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	limit := intQuery(c, "limit", 0)
	offset := intQuery(c, "offset", 0)

	tasks, err := h.tasks.ListOpenTasks(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ClaimTask(c echo.Context) error {
	workerID, err := callerID(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.ClaimTask(c.Request().Context(), c.Param("id"), workerID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) CancelTask(c echo.Context) error {
	posterID, err := callerID(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.CancelTask(c.Request().Context(), c.Param("id"), posterID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) AdvanceStatus(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.AdvanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateAdvanceStatusRequest(&req); err != nil {
		return err
	}

	task, err := h.tasks.AdvanceStatus(
		c.Request().Context(),
		c.Param("id"),
		actorID,
		constants.CurrentStatus(req.Status),
		req.Note,
		req.PhotoRef,
	)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) GetStatusHistory(c echo.Context) error {
	if _, err := callerID(c); err != nil {
		return err
	}

	entries, err := h.tasks.GetStatusHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(entries),
		"history": entries,
	})
}

func (h *Handler) EnsureRoom(c echo.Context) error {
	if _, err := callerID(c); err != nil {
		return err
	}

	room, err := h.chat.EnsureRoomForTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, room)
}

func (h *Handler) ListMessages(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	limit := intQuery(c, "limit", 0)
	offset := intQuery(c, "offset", 0)

	msgs, err := h.chat.ListMessages(c.Request().Context(), c.Param("id"), userID, limit, offset)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(msgs),
		"messages": msgs,
	})
}

func (h *Handler) SendMessage(c echo.Context) error {
	senderID, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateSendMessageRequest(&req); err != nil {
		return err
	}

	msg, err := h.chat.SendMessage(c.Request().Context(), c.Param("id"), senderID, req.Text)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, msg)
}

func (h *Handler) MarkRead(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.chat.MarkRead(c.Request().Context(), c.Param("id"), userID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
