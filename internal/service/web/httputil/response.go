// Package httputil 표준 에러 응답 생성과 전역 HTTP 에러 핸들러를 제공합니다.
package httputil

import (
	"net/http"

	"github.com/darkkaiser/echo-gtm/internal/service/web/model"
	"github.com/labstack/echo/v4"
)

func newHTTPError(code int, message string) error {
	return echo.NewHTTPError(code, model.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

// NewBadRequestError 400 Bad Request 에러를 생성합니다.
func NewBadRequestError(message string) error {
	return newHTTPError(http.StatusBadRequest, message)
}

// NewUnauthorizedError 401 Unauthorized 에러를 생성합니다.
func NewUnauthorizedError(message string) error {
	return newHTTPError(http.StatusUnauthorized, message)
}

// NewUnsupportedMediaTypeError 415 Unsupported Media Type 에러를 생성합니다.
func NewUnsupportedMediaTypeError(message string) error {
	return newHTTPError(http.StatusUnsupportedMediaType, message)
}

// NewNotFoundError 404 Not Found 에러를 생성합니다.
func NewNotFoundError(message string) error {
	return newHTTPError(http.StatusNotFound, message)
}

// NewTooManyRequestsError 429 Too Many Requests 에러를 생성합니다.
func NewTooManyRequestsError(message string) error {
	return newHTTPError(http.StatusTooManyRequests, message)
}

// NewInternalServerError 500 Internal Server Error 에러를 생성합니다.
func NewInternalServerError(message string) error {
	return newHTTPError(http.StatusInternalServerError, message)
}

// Success 표준 성공 응답(200)을 반환합니다.
func Success(c echo.Context) error {
	return c.JSON(http.StatusOK, model.SuccessResponse{
		ResultCode: 0,
		Message:    "성공",
	})
}
