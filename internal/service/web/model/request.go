package model

// ValidateIDsRequest POST /api/v1/ids/validate 요청
//
// ids는 문자열, {"id", "query_params"} 레코드, 또는 이들의 배열입니다.
type ValidateIDsRequest struct {
	IDs any `json:"ids" validate:"required" korean:"ids"`
}

// TrackingRequest PUT /api/v1/tracking 요청. 생략된 항목은 바꾸지 않습니다.
type TrackingRequest struct {
	Enabled *bool `json:"enabled" validate:"required_without=Debug" korean:"enabled"`
	Debug   *bool `json:"debug" validate:"required_without=Enabled" korean:"debug"`
}
