package constants

import "time"

// 서버 설정 기본값 상수입니다.
const (
	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 시간 (60초)
	DefaultRequestTimeout = 60 * time.Second

	// DefaultShutdownTimeout Graceful Shutdown 시 최대 대기 시간 (5초)
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultRateLimitPerSecond IP당 초당 허용 요청 수
	DefaultRateLimitPerSecond = 20

	// DefaultRateLimitBurst IP당 버스트 허용량
	DefaultRateLimitBurst = 40
)

// 보안 관련 상수입니다.
const (
	// DefaultMaxBodySize 요청 본문의 최대 크기 (64KB)
	DefaultMaxBodySize = "64K"

	// DefaultReadHeaderTimeout HTTP 헤더 읽기 최대 대기 시간 (10초)
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultReadTimeout 요청 본문 읽기 제한
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout 응답 쓰기 제한 (요청 타임아웃보다 길어야 한다)
	DefaultWriteTimeout = 75 * time.Second

	// DefaultIdleTimeout Keep-Alive 연결 유휴 제한
	DefaultIdleTimeout = 120 * time.Second
)

// SensitiveQueryParams 로그 기록 시 마스킹 처리해야 할 쿼리 파라미터 목록입니다.
// gtm_auth는 GTM 환경(Environment) 미리보기 인증 토큰입니다.
var SensitiveQueryParams = []string{
	"gtm_auth",
	"api_key",
	"password",
	"token",
	"secret",
}
