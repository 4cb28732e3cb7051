// Package constants 웹 서비스 전반에서 공유하는 상수를 정의합니다.
package constants

// 로그 발생 위치(컴포넌트) 식별을 위한 상수입니다.
const (
	// ComponentService 서비스 컴포넌트 이름
	ComponentService = "web.service"

	// ComponentHandler 핸들러 컴포넌트 이름
	ComponentHandler = "web.handler"

	// ComponentMiddlewareRateLimit 속도 제한 미들웨어 컴포넌트 이름
	ComponentMiddlewareRateLimit = "web.middleware.rate_limit"

	// ComponentMiddlewareAuth 인증 미들웨어 컴포넌트 이름
	ComponentMiddlewareAuth = "web.middleware.auth"

	// ComponentMiddlewareContentType Content-Type 검증 미들웨어 컴포넌트 이름
	ComponentMiddlewareContentType = "web.middleware.content_type"

	// ComponentMiddlewarePanicRecovery 패닉 복구 미들웨어 컴포넌트 이름
	ComponentMiddlewarePanicRecovery = "web.middleware.panic_recovery"

	// ComponentErrorHandler 에러 핸들러 컴포넌트 이름
	ComponentErrorHandler = "web.error_handler"
)
