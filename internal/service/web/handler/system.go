package handler

import (
	"net/http"
	"time"

	"github.com/darkkaiser/echo-gtm/internal/service/web/constants"
	"github.com/darkkaiser/echo-gtm/internal/service/web/model"
	applog "github.com/darkkaiser/echo-gtm/pkg/log"
	"github.com/labstack/echo/v4"
)

// HealthCheckHandler 서버 상태를 반환합니다.
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug("헬스체크 요청")

	tracking := "enabled"
	if !h.support.Enabled() {
		tracking = "disabled"
	}

	return c.JSON(http.StatusOK, model.HealthResponse{
		Status: constants.HealthStatusHealthy,
		Uptime: int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: map[string]string{
			"gtm_tracking": tracking,
		},
	})
}

// VersionHandler 빌드 정보를 반환합니다.
func (h *Handler) VersionHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, model.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   h.buildInfo.GoVersion,
	})
}

// MetricsHandler Prometheus 지표를 노출합니다.
func (h *Handler) MetricsHandler() echo.HandlerFunc {
	return echo.WrapHandler(h.recorder.Handler())
}
