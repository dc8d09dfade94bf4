package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "task-market.com/task-market/internal/data_models"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category is required")
	}
	if strings.TrimSpace(r.Store) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "store is required")
	}
	if strings.TrimSpace(r.DropoffLocation) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "dropoff_location is required")
	}
	if r.RewardAmount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "reward_amount must be positive")
	}
	if r.EstimatedMins <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "estimated_mins must be positive")
	}
	return nil
}
