package middleware

import (
	"net/url"
	"strconv"
	"time"

	"github.com/darkkaiser/echo-gtm/internal/service/web/constants"
	applog "github.com/darkkaiser/echo-gtm/pkg/log"
	"github.com/labstack/echo/v4"
)

const defaultBytesIn = "0"

// HTTPLogger 요청 하나가 끝날 때마다 구조화된 접근 로그를 한 줄 남기는 미들웨어입니다.
//
// 핸들러가 반환한 에러는 이 미들웨어에서 c.Error로 처리하므로, 로그에 기록되는
// 상태 코드는 에러 응답까지 반영된 최종 값입니다.
// gtm_auth 등 민감한 쿼리 파라미터는 마스킹됩니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			logRequest(c, start)

			return nil
		}
	}
}

func logRequest(c echo.Context, start time.Time) {
	req := c.Request()
	res := c.Response()

	stop := time.Now()
	latency := stop.Sub(start)

	path := req.URL.Path
	if path == "" {
		path = "/"
	}

	bytesIn := req.Header.Get(echo.HeaderContentLength)
	if bytesIn == "" {
		bytesIn = defaultBytesIn
	}

	applog.WithFields(applog.Fields{
		"time_rfc3339": stop.Format(time.RFC3339),

		"method":   req.Method,
		"path":     path,
		"route":    c.Path(),
		"uri":      maskSensitiveQueryParams(req.RequestURI),
		"host":     req.Host,
		"protocol": req.Proto,

		"remote_ip":  c.RealIP(),
		"user_agent": req.UserAgent(),
		"referer":    req.Referer(),

		"status":    res.Status,
		"bytes_in":  bytesIn,
		"bytes_out": strconv.FormatInt(res.Size, 10),

		"latency":       strconv.FormatInt(latency.Microseconds(), 10),
		"latency_human": latency.String(),

		"request_id": res.Header().Get(echo.HeaderXRequestID),
	}).Info("HTTP 요청")
}

// maskSensitiveQueryParams URI의 민감한 쿼리 파라미터 값을 마스킹합니다.
// 파싱할 수 없거나 마스킹할 값이 없으면 원본을 그대로 반환합니다.
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	masked := false
	for _, param := range constants.SensitiveQueryParams {
		if q.Has(param) {
			q.Set(param, applog.MaskSensitiveData(q.Get(param)))
			masked = true
		}
	}

	if !masked {
		return uri
	}

	u.RawQuery = q.Encode()
	return u.String()
}
