package gtm

import (
	"github.com/labstack/echo/v4"

	applog "github.com/darkkaiser/echo-gtm/pkg/log"
)

// Install 옵션을 검증한 뒤 Support를 생성해 e에 등록합니다.
//
// 등록되는 항목:
//   - Middleware: 요청마다 Support, DataLayer, CSP nonce를 Context에 저장
//   - ViewTracker: Options.TrackViews가 true인 경우에만 등록
//
// 등록 이후 모든 요청에서 FromContext로 같은 Support를 얻을 수 있습니다.
// 페이지에 스니펫을 넣으려면 라우트에 Injector를 붙이거나 템플릿에서 RenderSnippet을 사용합니다.
//
// Parameters:
//   - e: 플러그인을 등록할 echo 인스턴스
//   - opts: 컨테이너 ID와 스니펫/추적 옵션
//
// Returns:
//   - *ConfigurationError: 컨테이너 ID가 잘못된 경우 (처음 발견된 ID 하나만 보고)
//   - ErrInvalidOptions를 감싼 에러: 그 밖의 옵션이 잘못된 경우
//
// 에러가 반환되면 e에는 아무것도 등록되지 않습니다.
//
// 사용 예시:
//
//	support, err := gtm.Install(e, gtm.Options{ID: gtm.ID("GTM-ABC123"), TrackViews: true})
//	if err != nil {
//	    return err
//	}
//	e.GET("/", homeHandler, support.Injector()).Name = "home"
func Install(e *echo.Echo, opts Options) (*Support, error) {
	s, err := New(opts)
	if err != nil {
		return nil, err
	}

	s.Install(e)

	return s, nil
}

// Install 이미 생성된 Support를 e에 등록합니다.
//
// 화면 이름을 정확히 구하기 위해 e.OnAddRouteHandler를 감싸서, 이후 추가되는 라우트에
// echo가 자동으로 붙인 이름을 기록합니다. 기존 OnAddRouteHandler는 그대로 호출됩니다.
func (s *Support) Install(e *echo.Echo) {
	e.Use(s.Middleware())
	if s.opts.TrackViews {
		e.Use(s.ViewTracker())
	}

	prev := e.OnAddRouteHandler
	e.OnAddRouteHandler = func(host string, route echo.Route, handler echo.HandlerFunc, middleware []echo.MiddlewareFunc) {
		s.recordGeneratedRouteName(route)
		if prev != nil {
			prev(host, route, handler, middleware)
		}
	}

	ids := make([]string, 0, len(s.containers))
	for _, c := range s.containers {
		ids = append(ids, c.ID)
	}
	applog.WithComponentAndFields(component, applog.Fields{
		"containers":  ids,
		"enabled":     s.Enabled(),
		"track_views": s.opts.TrackViews,
	}).Info("GTM 플러그인 등록 완료")
}

// Middleware 요청마다 Support, 새 DataLayer, CSP nonce를 echo.Context와 요청 context.Context에 저장합니다.
func (s *Support) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			dl := NewDataLayer()

			c.Set(supportContextKey, s)
			c.Set(dataLayerContextKey, dl)
			c.Set(nonceContextKey, s.resolveNonce())

			req := c.Request()
			c.SetRequest(req.WithContext(NewContext(req.Context(), s, dl)))

			return next(c)
		}
	}
}
