package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/darkkaiser/echo-gtm/internal/service/web/constants"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestValidateContentType(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		body        string
		contentType string
		wantStatus  int
	}{
		{"JSON", http.MethodPost, `{}`, echo.MIMEApplicationJSON, http.StatusOK},
		{"charset 포함", http.MethodPost, `{}`, "application/json; charset=utf-8", http.StatusOK},
		{"대소문자 무시", http.MethodPost, `{}`, "Application/JSON", http.StatusOK},
		{"본문 없는 GET", http.MethodGet, "", "", http.StatusOK},
		{"헤더 누락", http.MethodPost, `{}`, "", http.StatusUnsupportedMediaType},
		{"폼 데이터", http.MethodPost, "kind=event", echo.MIMEApplicationForm, http.StatusUnsupportedMediaType},
		{"텍스트", http.MethodPut, `{}`, echo.MIMETextPlain, http.StatusUnsupportedMediaType},
		{"비슷한 이름", http.MethodPost, `{}`, "application/jsonp", http.StatusUnsupportedMediaType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			captureLogs(t)
			e := newTestEcho()
			e.Any("/api", func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}, ValidateContentType(echo.MIMEApplicationJSON))

			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, "/api", strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, "/api", nil)
			}
			if tt.contentType != "" {
				req.Header.Set(echo.HeaderContentType, tt.contentType)
			}
			rec := httptest.NewRecorder()

			// When
			e.ServeHTTP(rec, req)

			// Then
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnsupportedMediaType {
				assert.Equal(t, constants.ErrMsgUnsupportedMediaType, gjson.Get(rec.Body.String(), "message").String())
			}
		})
	}
}
