package gtm

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func homeHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// TestViewTracker 라우트 이름 해석과 제외 규칙을 검증합니다.
func TestViewTracker(t *testing.T) {
	setup := func(t *testing.T, opts Options) (*echo.Echo, *Support, *[]Fields) {
		t.Helper()

		e := echo.New()
		opts.TrackViews = true
		s := newTestSupport(t, opts)
		s.Install(e)

		var captured []Fields
		capture := func(c echo.Context) error {
			captured = append(captured, DataLayerFromContext(c).Entries()...)
			return c.NoContent(http.StatusOK)
		}

		e.GET("/", capture).Name = "home"
		e.GET("/about", capture).Name = "about"
		e.GET("/blog/:id", capture)
		e.GET("/health", capture).Name = "health"
		e.POST("/form", capture).Name = "form"
		return e, s, &captured
	}

	serve := func(e *echo.Echo, method, target string) int {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
		return rec.Code
	}

	t.Run("이름 있는 라우트", func(t *testing.T) {
		e, _, captured := setup(t, Options{})

		serve(e, http.MethodGet, "/about")

		require.Len(t, *captured, 1)
		assert.Equal(t, Fields{
			"event":             "content-view",
			"content-name":      "/about",
			"content-view-name": "about",
		}, (*captured)[0])
	})

	t.Run("이름 없는 라우트는 경로로부터 이름 생성", func(t *testing.T) {
		e, _, captured := setup(t, Options{})

		serve(e, http.MethodGet, "/blog/42")

		require.Len(t, *captured, 1)
		assert.Equal(t, "BlogId", (*captured)[0]["content-view-name"])
		assert.Equal(t, "/blog/42", (*captured)[0]["content-name"])
	})

	t.Run("ViewMeta의 화면 이름과 추가 필드", func(t *testing.T) {
		e, s, captured := setup(t, Options{})
		s.SetViewMeta("home", ViewMeta{Name: "Main Page", Data: Fields{"section": "landing"}})

		serve(e, http.MethodGet, "/")

		require.Len(t, *captured, 1)
		assert.Equal(t, "Main Page", (*captured)[0]["content-view-name"])
		assert.Equal(t, "landing", (*captured)[0]["section"])
	})

	t.Run("제외 대상, GET 이외의 요청, 일치하지 않는 요청은 기록하지 않음", func(t *testing.T) {
		e, _, captured := setup(t, Options{IgnoredViews: []string{"health"}})

		serve(e, http.MethodGet, "/health")
		serve(e, http.MethodPost, "/form")
		assert.Equal(t, http.StatusNotFound, serve(e, http.MethodGet, "/missing"))

		assert.Empty(t, *captured)
	})

	t.Run("비활성화 상태", func(t *testing.T) {
		e, s, captured := setup(t, Options{})
		s.Enable(false)

		serve(e, http.MethodGet, "/about")

		assert.Empty(t, *captured)
	})
}

// TestRouteNameHelpers 생성된 라우트 이름 판별과 경로 기반 이름을 검증합니다.
func TestRouteNameHelpers(t *testing.T) {
	e := echo.New()
	r := e.GET("/", homeHandler)
	assert.True(t, looksLikeFuncName(r.Name), r.Name)
	assert.True(t, looksLikeFuncName("main.main.func1"))
	assert.True(t, looksLikeFuncName("main.(*Handler).Home-fm"))
	assert.False(t, looksLikeFuncName("home"))
	assert.False(t, looksLikeFuncName("blog.post"))

	tests := []struct {
		path string
		want string
	}{
		{"/", "Root"},
		{"/about", "About"},
		{"/blog/:id", "BlogId"},
		{"/user-profile/settings", "UserProfileSettings"},
		{"/files/*", "Files"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, viewNameFromPath(tt.path), tt.path)
	}
}

// TestViewTracker_RouteNames 사용자가 지정한 이름과 echo가 생성한 이름을 구분하는지 검증합니다.
func TestViewTracker_RouteNames(t *testing.T) {
	// Given
	e := echo.New()

	var prevCalls int
	e.OnAddRouteHandler = func(string, echo.Route, echo.HandlerFunc, []echo.MiddlewareFunc) {
		prevCalls++
	}

	e.GET("/legacy", homeHandler).Name = "legacy.page"

	s := newTestSupport(t, Options{TrackViews: true})
	s.Install(e)

	var captured []Fields
	capture := func(c echo.Context) error {
		captured = append(captured, DataLayerFromContext(c).Entries()...)
		return c.NoContent(http.StatusOK)
	}

	e.GET("/blog/:slug", capture).Name = "blog.post"
	e.GET("/docs/:page", capture)
	e.GET("/legacy-capture", capture).Name = "legacy.capture"

	tests := []struct {
		target string
		want   string
	}{
		{"/blog/hello", "blog.post"},
		{"/docs/intro", "DocsPage"},
		{"/legacy-capture", "legacy.capture"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			captured = nil

			// When
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			// Then
			require.Len(t, captured, 1)
			assert.Equal(t, tt.want, captured[0]["content-view-name"])
		})
	}

	assert.Equal(t, 4, prevCalls, "기존 OnAddRouteHandler도 호출되어야 합니다")
	assert.False(t, s.isGeneratedRouteName(echo.Route{Method: http.MethodGet, Path: "/legacy", Name: "legacy.page"}),
		"Install 이전 라우트는 이름 모양으로 판단합니다")
}
