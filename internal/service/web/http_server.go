package web

import (
	"net/http"
	"time"

	"github.com/darkkaiser/echo-gtm/internal/service/web/constants"
	"github.com/darkkaiser/echo-gtm/internal/service/web/handler"
	"github.com/darkkaiser/echo-gtm/internal/service/web/httputil"
	appmiddleware "github.com/darkkaiser/echo-gtm/internal/service/web/middleware"
	applog "github.com/darkkaiser/echo-gtm/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정입니다.
type HTTPServerConfig struct {
	// Debug echo 디버그 모드 (상세 에러 메시지 노출)
	Debug bool

	// EnableHSTS HTTPS로 서비스할 때 Strict-Transport-Security 헤더를 추가합니다.
	EnableHSTS bool

	// AllowOrigins CORS 허용 Origin 목록
	AllowOrigins []string

	// RequestTimeout 요청 처리 타임아웃 (0이면 기본값)
	RequestTimeout time.Duration
}

// NewHTTPServer 공통 미들웨어 체인이 적용된 echo 인스턴스를 생성합니다.
//
// 미들웨어 순서: PanicRecovery → RequestID → Server 헤더 제거 → HTTPLogger →
// RateLimiting → BodyLimit → Timeout → CORS → Secure
// GTM 미들웨어는 이후 gtm.Install에서 등록됩니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}
	e.HTTPErrorHandler = httputil.ErrorHandler
	e.Renderer = handler.NewRenderer()

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}

	var hstsMaxAge int
	if cfg.EnableHSTS {
		hstsMaxAge = 31536000
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.RateLimiting(constants.DefaultRateLimitPerSecond, constants.DefaultRateLimitBurst))
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: timeout,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPost},
	}))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      middleware.DefaultSecureConfig.XSSProtection,
		ContentTypeNosniff: middleware.DefaultSecureConfig.ContentTypeNosniff,
		XFrameOptions:      middleware.DefaultSecureConfig.XFrameOptions,
		HSTSMaxAge:         hstsMaxAge,
	}))

	return e
}
