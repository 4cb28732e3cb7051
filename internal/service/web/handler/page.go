package handler

import (
	"net/http"

	"github.com/darkkaiser/echo-gtm/pkg/gtm"
	"github.com/labstack/echo/v4"
)

type pageData struct {
	Title   string
	Snippet gtm.Snippet
}

// HomeHandler 메인 페이지. 스니펫은 라우트에 등록된 Injector가 삽입합니다.
func (h *Handler) HomeHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", pageData{Title: "echo-gtm"})
}

// AboutHandler 소개 페이지. 템플릿에서 스니펫을 직접 출력합니다.
func (h *Handler) AboutHandler(c echo.Context) error {
	snippet, err := gtm.RenderSnippet(c)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "about.html", pageData{Title: "About echo-gtm", Snippet: snippet})
}
