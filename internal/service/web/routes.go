package web

import (
	"github.com/darkkaiser/echo-gtm/internal/service/web/auth"
	"github.com/darkkaiser/echo-gtm/internal/service/web/constants"
	"github.com/darkkaiser/echo-gtm/internal/service/web/handler"
	"github.com/darkkaiser/echo-gtm/internal/service/web/middleware"
	"github.com/darkkaiser/echo-gtm/pkg/gtm"
	"github.com/labstack/echo/v4"
)

// SetupRoutes 페이지, GTM API, 시스템 엔드포인트를 등록합니다.
//
// 라우트 이름은 화면 조회 이벤트의 화면 이름이 됩니다.
// /api/v1 요청 본문은 JSON이어야 하며, 추적 설정 변경은 관리 API 키 인증을 거칩니다.
func SetupRoutes(e *echo.Echo, h *handler.Handler, support *gtm.Support, authenticator *auth.Authenticator) {
	// 페이지
	e.GET("/", h.HomeHandler, support.Injector()).Name = constants.RouteNameHome
	e.GET("/about", h.AboutHandler).Name = constants.RouteNameAbout

	// GTM
	e.GET("/gtm/snippet", h.SnippetHandler).Name = constants.RouteNameGTMSnippet

	v1 := e.Group("/api/v1", middleware.ValidateContentType(echo.MIMEApplicationJSON))
	v1.POST("/ids/validate", h.ValidateIDsHandler)
	v1.POST("/dispatch", h.DispatchHandler)
	v1.GET("/tracking", h.GetTrackingHandler).Name = constants.RouteNameTracking
	v1.PUT("/tracking", h.UpdateTrackingHandler, middleware.RequireAuthentication(authenticator))

	// 시스템
	e.GET("/health", h.HealthCheckHandler).Name = constants.RouteNameHealth
	e.GET("/version", h.VersionHandler).Name = constants.RouteNameVersion
	e.GET("/metrics", h.MetricsHandler()).Name = constants.RouteNameMetrics
}
