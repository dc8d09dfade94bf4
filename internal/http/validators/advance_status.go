package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"task-market.com/task-market/internal/constants"
	dto "task-market.com/task-market/internal/data_models"
)

func ValidateAdvanceStatusRequest(r *dto.AdvanceStatusRequest) error {
	if r.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	if !constants.ValidCurrentStatus(constants.CurrentStatus(r.Status)) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}
	return nil
}
