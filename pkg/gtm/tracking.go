package gtm

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
)

var funcLiteralSuffix = regexp.MustCompile(`\.func\d+(\.\d+)*$`)

// ViewTracker GET 요청마다 일치한 라우트를 화면 조회(TrackView)로 기록하는 미들웨어입니다.
//
// Middleware 이후에 등록되어야 합니다. (Install은 순서를 보장합니다)
// 라우트와 일치하지 않은 요청, 제외 대상 화면은 기록하지 않습니다.
func (s *Support) ViewTracker() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodGet {
				s.trackRoute(c)
			}
			return next(c)
		}
	}
}

func (s *Support) trackRoute(c echo.Context) {
	name, ok := s.routeName(c)
	if !ok || s.IsIgnoredView(name) {
		return
	}

	screenName := name
	meta, _ := s.lookupViewMeta(name)
	if meta.Name != "" {
		screenName = meta.Name
	}

	s.TrackView(DataLayerFromContext(c), screenName, c.Request().URL.Path, meta.Data)
}

// routeName 현재 요청과 일치한 라우트의 이름을 구합니다.
//
// echo는 이름이 없는 라우트에 핸들러 함수 이름을 붙이므로,
// 그런 이름이면 라우트 경로로부터 이름을 만듭니다. ("/blog/:id" -> "BlogId")
func (s *Support) routeName(c echo.Context) (string, bool) {
	method, path := c.Request().Method, c.Path()
	if path == "" {
		return "", false
	}

	for _, r := range c.Echo().Routes() {
		if r.Method != method || r.Path != path {
			continue
		}
		if r.Name != "" && !s.isGeneratedRouteName(*r) {
			return r.Name, true
		}
		return viewNameFromPath(path), true
	}

	return "", false
}

func (s *Support) recordGeneratedRouteName(r echo.Route) {
	s.routeMu.Lock()
	defer s.routeMu.Unlock()

	s.generatedRouteNames[r.Method+r.Path] = r.Name
}

// isGeneratedRouteName r.Name이 echo가 핸들러 함수 이름으로 자동 생성한 이름인지 판별합니다.
//
// Install 이후 추가된 라우트는 등록 시점의 이름과 비교하므로 "blog.post"처럼 점이 들어간
// 사용자 지정 이름도 그대로 유지됩니다. Install 이전에 추가된 라우트는 함수 이름의 모양으로 판단합니다.
func (s *Support) isGeneratedRouteName(r echo.Route) bool {
	s.routeMu.RLock()
	generated, ok := s.generatedRouteNames[r.Method+r.Path]
	s.routeMu.RUnlock()

	if ok {
		return r.Name == generated
	}
	return looksLikeFuncName(r.Name)
}

// looksLikeFuncName runtime.FuncForPC 이름의 모양인지 검사합니다.
// 예: "github.com/acme/app/web.(*Handler).Home-fm", "main.main.func1"
func looksLikeFuncName(name string) bool {
	return strings.Contains(name, "/") || strings.HasSuffix(name, "-fm") || funcLiteralSuffix.MatchString(name)
}

func viewNameFromPath(path string) string {
	words := strings.Map(func(r rune) rune {
		switch r {
		case '/', ':', '*', '-', '_', '.':
			return ' '
		}
		return r
	}, path)

	if strings.TrimSpace(words) == "" {
		return "Root"
	}
	return strcase.ToCamel(strings.TrimSpace(words))
}
