package handler

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer echo.Renderer 구현체. templates 디렉토리의 페이지를 파일명으로 렌더링합니다.
type Renderer struct {
	templates *template.Template
}

// NewRenderer 내장된 페이지 템플릿을 파싱합니다.
func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
