package constants

// 라우트 이름 상수입니다. 라우트 이름은 GTM 화면 조회 이벤트의 화면 이름으로 사용됩니다.
const (
	RouteNameHome  = "home"
	RouteNameAbout = "about"

	RouteNameHealth     = "health"
	RouteNameVersion    = "version"
	RouteNameMetrics    = "metrics"
	RouteNameGTMSnippet = "gtm-snippet"
	RouteNameTracking   = "tracking"
)

// UntrackedRouteNames 화면 조회로 기록하지 않는 시스템 라우트 이름 목록입니다.
var UntrackedRouteNames = []string{
	RouteNameHealth,
	RouteNameVersion,
	RouteNameMetrics,
	RouteNameGTMSnippet,
	RouteNameTracking,
}

// 헬스체크 상태
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
)
