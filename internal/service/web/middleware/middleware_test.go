package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/darkkaiser/echo-gtm/internal/service/web/httputil"
	applog "github.com/darkkaiser/echo-gtm/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// captureLogs 테스트 동안 전역 로거 출력을 JSON 형식으로 캡처합니다.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := new(bytes.Buffer)
	originalOut := applog.StandardLogger().Out
	originalFormatter := applog.StandardLogger().Formatter
	originalLevel := applog.StandardLogger().Level

	applog.SetOutput(buf)
	applog.SetFormatter(&applog.JSONFormatter{})
	applog.SetLevel(applog.DebugLevel)

	t.Cleanup(func() {
		applog.SetOutput(originalOut)
		applog.SetFormatter(originalFormatter)
		applog.SetLevel(originalLevel)
	})

	return buf
}

// lastLogLine 버퍼에 기록된 마지막 로그 한 줄을 반환합니다.
func lastLogLine(t *testing.T, buf *bytes.Buffer) string {
	t.Helper()

	out := strings.TrimSpace(buf.String())
	require.NotEmpty(t, out, "로그가 기록되지 않았습니다")

	lines := strings.Split(out, "\n")
	return lines[len(lines)-1]
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	return e
}

func TestHTTPLogger(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		handler    echo.HandlerFunc
		wantStatus int
		wantURI    string
	}{
		{
			name:       "정상 응답",
			target:     "/page?x=1",
			handler:    func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
			wantStatus: http.StatusOK,
			wantURI:    "/page?x=1",
		},
		{
			name:       "에러는 최종 상태 코드로 기록",
			target:     "/page",
			handler:    func(c echo.Context) error { return httputil.NewBadRequestError("bad") },
			wantStatus: http.StatusBadRequest,
			wantURI:    "/page",
		},
		{
			name:       "민감한 파라미터 마스킹",
			target:     "/page?gtm_auth=abcdefghijklmnop&x=1",
			handler:    func(c echo.Context) error { return c.NoContent(http.StatusNoContent) },
			wantStatus: http.StatusNoContent,
			wantURI:    "/page?gtm_auth=abcd%2A%2A%2Amnop&x=1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			buf := captureLogs(t)
			e := newTestEcho()
			e.Use(HTTPLogger())
			e.GET("/page", tt.handler)

			// When
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			// Then
			assert.Equal(t, tt.wantStatus, rec.Code)

			line := lastLogLine(t, buf)
			assert.Equal(t, "HTTP 요청", gjson.Get(line, "msg").String())
			assert.Equal(t, int64(tt.wantStatus), gjson.Get(line, "status").Int())
			assert.Equal(t, "/page", gjson.Get(line, "route").String())
			assert.Equal(t, tt.wantURI, gjson.Get(line, "uri").String())
		})
	}
}

func TestMaskSensitiveQueryParams(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"파라미터 없음", "/a", "/a"},
		{"대상 아님", "/a?x=1", "/a?x=1"},
		{"짧은 토큰", "/a?token=abc", "/a?token=%2A%2A%2A"},
		{"파싱 불가", "%zz", "%zz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskSensitiveQueryParams(tt.uri))
		})
	}
}

func TestPanicRecovery(t *testing.T) {
	tests := []struct {
		name      string
		panicWith any
		wantError string
	}{
		{"문자열 패닉", "boom", "boom"},
		{"에러 패닉", errors.New("broken"), "broken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			buf := captureLogs(t)
			e := newTestEcho()
			e.Use(PanicRecovery())
			e.GET("/panic", func(c echo.Context) error { panic(tt.panicWith) })

			// When
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

			// Then
			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			var found string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				if gjson.Get(line, "msg").String() == "PANIC RECOVERED" {
					found = line
				}
			}
			require.NotEmpty(t, found)
			assert.Contains(t, gjson.Get(found, "error").String(), tt.wantError)
			assert.NotEmpty(t, gjson.Get(found, "stack").String())
		})
	}

	t.Run("ErrAbortHandler는 다시 패닉", func(t *testing.T) {
		mw := PanicRecovery()(func(c echo.Context) error { panic(http.ErrAbortHandler) })
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() { _ = mw(c) })
	})
}

func TestRateLimiting_InputValidation(t *testing.T) {
	tests := []struct {
		name  string
		rps   int
		burst int
		want  string
	}{
		{"초당 요청 수 0", 0, 1, "[RateLimiting] requestsPerSecond는 양수여야 합니다"},
		{"버스트 음수", 1, -1, "[RateLimiting] burst는 양수여야 합니다"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PanicsWithValue(t, tt.want, func() { RateLimiting(tt.rps, tt.burst) })
		})
	}

	assert.NotPanics(t, func() { RateLimiting(1, 1) })
}

func TestRateLimiting(t *testing.T) {
	// Given
	captureLogs(t)
	e := newTestEcho()
	e.Use(RateLimiting(1, 2))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	request := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	// When & Then: 버스트 이후 거부
	assert.Equal(t, http.StatusOK, request("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, request("10.0.0.1").Code)

	rec := request("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// 다른 IP는 독립적인 버킷을 가진다.
	assert.Equal(t, http.StatusOK, request("10.0.0.2").Code)
}

func TestIPRateLimiter_Concurrency(t *testing.T) {
	limiter := newIPRateLimiter(10, 10)

	var wg sync.WaitGroup
	results := make([]*rate.Limiter, 100)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = limiter.getLimiter("192.168.0.1")
		}(i)
	}
	wg.Wait()

	for _, l := range results {
		assert.Same(t, results[0], l)
	}
	assert.Len(t, limiter.limiters, 1)
}

func TestLoggerAdapter(t *testing.T) {
	logger := applog.StandardLogger()
	original := logger.GetLevel()
	t.Cleanup(func() { logger.SetLevel(original) })

	l := Logger{Logger: logger}

	tests := []struct {
		name string
		set  log.Lvl
		want log.Lvl
	}{
		{"DEBUG", log.DEBUG, log.DEBUG},
		{"INFO", log.INFO, log.INFO},
		{"WARN", log.WARN, log.WARN},
		{"ERROR", log.ERROR, log.ERROR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l.SetLevel(tt.set)
			assert.Equal(t, tt.want, l.Level())
		})
	}

	t.Run("OFF는 무시", func(t *testing.T) {
		l.SetLevel(log.INFO)
		l.SetLevel(log.OFF)
		assert.Equal(t, log.INFO, l.Level())
	})

	t.Run("대응하지 않는 레벨은 OFF", func(t *testing.T) {
		logger.SetLevel(applog.TraceLevel)
		assert.Equal(t, log.OFF, l.Level())
	})

	t.Run("JSON 필드 출력", func(t *testing.T) {
		buf := captureLogs(t)

		l.Infoj(log.JSON{"k": "v"})

		assert.Equal(t, "v", gjson.Get(lastLogLine(t, buf), "k").String())
		assert.Empty(t, l.Prefix())
		assert.Same(t, buf, l.Output())
	})
}
