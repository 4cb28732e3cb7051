package httputil

import (
	"errors"
	"net/http"

	"github.com/darkkaiser/echo-gtm/internal/service/web/constants"
	"github.com/darkkaiser/echo-gtm/internal/service/web/model"
	applog "github.com/darkkaiser/echo-gtm/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler echo의 전역 HTTP 에러 핸들러입니다.
//
// 모든 에러를 ErrorResponse 형식의 JSON으로 응답하고, 상태 코드에 따라
// 4xx는 Warn, 5xx는 Error 레벨로 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := constants.ErrMsgInternalServer

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			message = m
		case model.ErrorResponse:
			message = m.Message
		}
	}

	switch code {
	case http.StatusNotFound:
		message = constants.ErrMsgNotFound
	case http.StatusRequestEntityTooLarge:
		message = constants.ErrMsgRequestEntityTooLarge
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, model.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
