package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/echo-gtm/internal/service/web/constants"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		err         error
		wantCode    int
		wantMessage string
	}{
		{"일반 에러는 500", http.MethodGet, errors.New("boom"), http.StatusInternalServerError, constants.ErrMsgInternalServer},
		{"표준 400 에러", http.MethodPost, NewBadRequestError("잘못됨"), http.StatusBadRequest, "잘못됨"},
		{"문자열 메시지 HTTPError", http.MethodGet, echo.NewHTTPError(http.StatusConflict, "충돌"), http.StatusConflict, "충돌"},
		{"404 메시지 통일", http.MethodGet, echo.ErrNotFound, http.StatusNotFound, constants.ErrMsgNotFound},
		{"413 메시지 통일", http.MethodPost, echo.ErrStatusRequestEntityTooLarge, http.StatusRequestEntityTooLarge, constants.ErrMsgRequestEntityTooLarge},
		{"429", http.MethodGet, NewTooManyRequestsError(constants.ErrMsgTooManyRequests), http.StatusTooManyRequests, constants.ErrMsgTooManyRequests},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			e := echo.New()
			req := httptest.NewRequest(tt.method, "/x", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			// When
			ErrorHandler(tt.err, c)

			// Then
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, int64(tt.wantCode), gjson.Get(rec.Body.String(), "result_code").Int())
			assert.Equal(t, tt.wantMessage, gjson.Get(rec.Body.String(), "message").String())
		})
	}

	t.Run("HEAD 요청은 본문 없음", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodHead, "/x", nil), rec)

		ErrorHandler(echo.ErrNotFound, c)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("이미 응답이 커밋됨", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)
		_ = c.String(http.StatusOK, "done")

		ErrorHandler(errors.New("late"), c)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "done", rec.Body.String())
	})
}

func TestSuccess(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	assert.NoError(t, Success(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result_code":0,"message":"성공"}`, rec.Body.String())
}
