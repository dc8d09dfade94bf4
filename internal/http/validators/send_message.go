package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "task-market.com/task-market/internal/data_models"
)

func ValidateSendMessageRequest(r *dto.SendMessageRequest) error {
	if strings.TrimSpace(r.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	return nil
}
