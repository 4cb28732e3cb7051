package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/darkkaiser/echo-gtm/internal/service/web/auth"
	"github.com/darkkaiser/echo-gtm/internal/service/web/constants"
	"github.com/darkkaiser/echo-gtm/internal/service/web/httputil"
	"github.com/darkkaiser/echo-gtm/internal/service/web/model"
	"github.com/darkkaiser/echo-gtm/pkg/gtm"
	applog "github.com/darkkaiser/echo-gtm/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"
)

// SnippetHandler 정적 사이트용으로 현재 설정의 스니펫을 JSON({head, body})으로 반환합니다.
func (h *Handler) SnippetHandler(c echo.Context) error {
	snippet, err := gtm.RenderSnippet(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, snippet)
}

// ValidateIDsHandler 컨테이너 ID 목록을 검증합니다.
//
// 형식이 올바르면 200과 정규화된 컨테이너 목록을, 잘못된 ID가 있으면 422와 함께
// 첫 번째로 발견된 ID, 교정 제안, 에러 메시지를 반환합니다.
func (h *Handler) ValidateIDsHandler(c echo.Context) error {
	var req model.ValidateIDsRequest
	if err := c.Bind(&req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}
	if err := ValidateRequest(&req); err != nil {
		return httputil.NewBadRequestError(FormatValidationError(err))
	}

	src, err := gtm.ParseSource(req.IDs)
	if err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestIDs + ": " + err.Error())
	}

	containers, err := gtm.Validate(src)
	if err != nil {
		var cfgErr *gtm.ConfigurationError
		if !errors.As(err, &cfgErr) {
			return err
		}

		applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
			"id":         cfgErr.ID,
			"suggestion": cfgErr.Suggestion,
			"remote_ip":  c.RealIP(),
		}).Debug(constants.LogMsgIDValidation)

		return c.JSON(http.StatusUnprocessableEntity, model.ValidateIDsResponse{
			Valid:      false,
			ID:         &cfgErr.ID,
			Suggestion: &cfgErr.Suggestion,
			Message:    cfgErr.Error(),
		})
	}

	return c.JSON(http.StatusOK, model.ValidateIDsResponse{
		Valid:      true,
		Containers: containers,
	})
}

// DispatchHandler 요청 본문의 이벤트를 현재 요청의 데이터 레이어에 기록하고 렌더링 결과를 반환합니다.
//
//	{"kind": "event", "event": "...", "category": "...", "action": "...", "label": "...", "value": 1, "non_interaction": false, "extra": {...}}
//	{"kind": "view", "screen_name": "...", "path": "/...", "extra": {...}}
func (h *Handler) DispatchHandler(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestEmptyBody)
	}
	if !gjson.ValidBytes(body) {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidJSON)
	}

	r := gjson.ParseBytes(body)
	dl := gtm.DataLayerFromContext(c)

	var delivered bool
	switch r.Get("kind").String() {
	case gtm.KindEvent:
		delivered = h.support.TrackEvent(dl, gtm.Event{
			Event:          r.Get("event").String(),
			Category:       r.Get("category").String(),
			Action:         r.Get("action").String(),
			Label:          r.Get("label").String(),
			Value:          r.Get("value").Value(),
			NonInteraction: r.Get("non_interaction").Bool(),
			Extra:          fieldsOf(r.Get("extra")),
		})

	case gtm.KindView:
		screenName := r.Get("screen_name").String()
		if screenName == "" {
			return httputil.NewBadRequestError("screen_name은 필수입니다")
		}
		path := r.Get("path").String()
		if path == "" {
			path = "/"
		}
		delivered = h.support.TrackView(dl, screenName, path, fieldsOf(r.Get("extra")))

	default:
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestUnknownKind)
	}

	snippet, err := gtm.RenderSnippet(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, model.DispatchResponse{
		Delivered: delivered,
		DataLayer: dl,
		Snippet:   snippet,
	})
}

// fieldsOf JSON 객체를 gtm.Fields로 변환합니다. 객체가 아니면 nil입니다.
func fieldsOf(r gjson.Result) gtm.Fields {
	if !r.IsObject() {
		return nil
	}
	m, _ := r.Value().(map[string]any)
	return gtm.Fields(m)
}

// GetTrackingHandler 현재 추적 상태를 반환합니다.
func (h *Handler) GetTrackingHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, model.TrackingResponse{
		Enabled: h.support.Enabled(),
		Debug:   h.support.DebugEnabled(),
	})
}

// UpdateTrackingHandler 추적 활성화 여부와 디버그 로깅을 실행 중에 바꿉니다.
func (h *Handler) UpdateTrackingHandler(c echo.Context) error {
	var req model.TrackingRequest
	if err := c.Bind(&req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}
	if err := ValidateRequest(&req); err != nil {
		return httputil.NewBadRequestError(FormatValidationError(err))
	}

	if req.Enabled != nil {
		h.support.Enable(*req.Enabled)
	}
	if req.Debug != nil {
		h.support.Debug(*req.Debug)
	}
	h.recorder.SetTrackingEnabled(h.support.Enabled())

	appKey, _ := auth.AppKey(c)
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"enabled":   h.support.Enabled(),
		"debug":     h.support.DebugEnabled(),
		"app_key":   applog.MaskSensitiveData(appKey),
		"remote_ip": c.RealIP(),
	}).Info(constants.LogMsgTrackingChanged)

	return h.GetTrackingHandler(c)
}
