package gtm

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"

	applog "github.com/darkkaiser/echo-gtm/pkg/log"
)

// Injector text/html 응답에 Snippet을 삽입하는 미들웨어를 반환합니다.
//
// 처리 과정:
//  1. 응답 본문을 버퍼링
//  2. goquery로 파싱하여 Head를 ParentElement(없으면 <body>)의 끝에 삽입
//  3. Body(noscript iframe)를 <body>의 처음에 삽입
//  4. 수정된 문서를 원래 상태 코드로 전송
//
// 그대로 전달되는 경우:
//   - HEAD 요청, 또는 추적이 비활성화된 상태
//   - HTML이 아닌 응답, 압축된 응답
//   - 이미 GTM 스크립트(gtm.js)를 포함한 문서
//
// Middleware 이후에 실행되어야 하므로 라우트 또는 그룹 단위로 등록합니다.
//
// 사용 예시:
//
//	e.GET("/", homeHandler, support.Injector()).Name = "home"
//
//	pages := e.Group("/pages", support.Injector())
func (s *Support) Injector() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodHead || !s.Enabled() {
				return next(c)
			}

			res := c.Response()
			original := res.Writer
			buf := &bufferedResponseWriter{header: original.Header()}
			res.Writer = buf

			err := next(c)

			res.Writer = original

			if !buf.wroteHeader {
				// 핸들러가 아무것도 쓰지 않았다. (에러 핸들러가 원래 Writer로 응답한다)
				return err
			}

			body := buf.body.Bytes()
			if isInjectable(original.Header()) {
				if injected, ok := s.inject(c, body); ok {
					body = injected
					original.Header().Set(echo.HeaderContentLength, strconv.Itoa(len(body)))
				}
			}

			original.WriteHeader(buf.status)
			if _, werr := original.Write(body); werr != nil && err == nil {
				err = werr
			}
			return err
		}
	}
}

func (s *Support) inject(c echo.Context, body []byte) ([]byte, bool) {
	snippet, err := RenderSnippet(c)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"path":  c.Request().URL.Path,
			"error": err,
		}).Error("GTM 스니펫 렌더링 실패")
		return nil, false
	}
	if snippet.IsZero() {
		return nil, false
	}

	out, err := s.injectHTML(body, snippet)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"path":  c.Request().URL.Path,
			"error": err,
		}).Warn("HTML 문서에 GTM 스니펫을 삽입하지 못했습니다")
		return nil, false
	}
	return out, out != nil
}

// injectHTML 문서에 스니펫을 삽입합니다. 이미 스크립트가 있으면 nil을 반환합니다.
func (s *Support) injectHTML(body []byte, snippet Snippet) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if s.hasScript(doc) {
		return nil, nil
	}

	parent := doc.Find(s.opts.ParentElement).First()
	if parent.Length() == 0 {
		parent = doc.Find("body")
	}
	parent.AppendHtml(string(snippet.Head))

	if snippet.Body != "" {
		doc.Find("body").PrependHtml(string(snippet.Body))
	}

	html, err := doc.Html()
	if err != nil {
		return nil, err
	}
	return []byte(html), nil
}

// hasScript 문서가 이미 GTM 스크립트를 참조하는지 확인합니다.
func (s *Support) hasScript(doc *goquery.Document) bool {
	found := false
	doc.Find("script[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src := sel.AttrOr("src", "")
		if strings.Contains(src, "googletagmanager.com/gtm.js") || strings.HasPrefix(src, s.opts.Source) {
			found = true
		}
		return !found
	})
	return found
}

func isInjectable(h http.Header) bool {
	if h.Get(echo.HeaderContentEncoding) != "" {
		return false
	}
	return strings.HasPrefix(h.Get(echo.HeaderContentType), echo.MIMETextHTML)
}

// bufferedResponseWriter 응답을 메모리에 모아두는 http.ResponseWriter입니다.
type bufferedResponseWriter struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func (w *bufferedResponseWriter) Header() http.Header {
	return w.header
}

func (w *bufferedResponseWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.status = code
	w.wroteHeader = true
}

func (w *bufferedResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.body.Write(b)
}

// Flush 버퍼링 중에는 아무것도 하지 않습니다.
func (w *bufferedResponseWriter) Flush() {}
