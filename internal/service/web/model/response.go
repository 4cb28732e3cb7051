// Package model 웹 API의 요청/응답 본문 형식을 정의합니다.
package model

import (
	"github.com/darkkaiser/echo-gtm/pkg/gtm"
)

// ErrorResponse 에러 응답
type ErrorResponse struct {
	ResultCode int    `json:"result_code"`
	Message    string `json:"message"`
}

// SuccessResponse 본문이 필요 없는 성공 응답
type SuccessResponse struct {
	ResultCode int    `json:"result_code"`
	Message    string `json:"message"`
}

// ValidateIDsResponse POST /api/v1/ids/validate 응답
type ValidateIDsResponse struct {
	Valid bool `json:"valid"`

	// 검증 성공 시
	Containers []gtm.Container `json:"containers,omitempty"`

	// 검증 실패 시
	ID         *string `json:"id,omitempty"`
	Suggestion *string `json:"suggestion,omitempty"`
	Message    string  `json:"message,omitempty"`
}

// DispatchResponse POST /api/v1/dispatch 응답
type DispatchResponse struct {
	Delivered bool           `json:"delivered"`
	DataLayer *gtm.DataLayer `json:"data_layer"`
	Snippet   gtm.Snippet    `json:"snippet"`
}

// TrackingResponse PUT /api/v1/tracking 응답
type TrackingResponse struct {
	Enabled bool `json:"enabled"`
	Debug   bool `json:"debug"`
}

// HealthResponse GET /health 응답
type HealthResponse struct {
	Status       string            `json:"status"`
	Uptime       int64             `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// VersionResponse GET /version 응답
type VersionResponse struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	BuildNumber string `json:"build_number"`
	GoVersion   string `json:"go_version"`
}
