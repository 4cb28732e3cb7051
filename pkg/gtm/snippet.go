package gtm

import (
	"bytes"
	"html/template"
)

// Snippet 페이지에 삽입할 HTML 조각입니다.
type Snippet struct {
	// Head 데이터 레이어 초기화 스크립트와 컨테이너 스크립트 태그. <head> 또는 ParentElement에 들어갑니다.
	Head template.HTML `json:"head"`

	// Body JavaScript 비활성 환경용 <noscript> iframe. <body> 바로 뒤에 들어갑니다.
	Body template.HTML `json:"body"`
}

// IsZero 출력할 내용이 없는지 반환합니다.
func (s Snippet) IsZero() bool {
	return s.Head == "" && s.Body == ""
}

var snippetTemplates = template.Must(template.New("gtm").Parse(`
{{- define "head" -}}
<script{{if .Nonce}} nonce="{{.Nonce}}"{{end}}>window.{{.Name}}=window.{{.Name}}||[];
{{- range .Entries}}window.{{$.Name}}.push({{.}});{{end -}}
</script>
{{- range .Scripts}}<script{{if .Async}} async{{end}}{{if .Defer}} defer{{end}}{{if $.Nonce}} nonce="{{$.Nonce}}"{{end}} src="{{.URL}}"></script>{{end}}
{{- end -}}

{{- define "body" -}}
{{- range .Scripts}}<noscript><iframe src="{{.NoScriptURL}}" height="0" width="0" style="display:none;visibility:hidden"></iframe></noscript>{{end}}
{{- end -}}
`))

type snippetScript struct {
	URL         string
	NoScriptURL string
	Async       bool
	Defer       bool
}

type snippetData struct {
	Name    template.JS
	Nonce   string
	Entries []Fields
	Scripts []snippetScript
}

// Snippet dl에 쌓인 항목과 컨테이너 스크립트를 HTML로 렌더링합니다.
//
// 추적이 꺼져 있으면 빈 Snippet을 반환합니다.
// LoadScript가 false면 데이터 레이어 초기화 스크립트만 출력합니다.
// dl은 nil일 수 있습니다.
func (s *Support) Snippet(dl *DataLayer, nonce string) (Snippet, error) {
	if !s.Enabled() {
		return Snippet{}, nil
	}

	data := snippetData{
		// withDefaults/validate를 거쳐 JavaScript 식별자임이 보장된다.
		Name:  template.JS(s.opts.DataLayerName),
		Nonce: nonce,
	}

	if *s.opts.LoadScript {
		data.Entries = append(data.Entries, Fields{
			"event":     "gtm.js",
			"gtm.start": s.now().UnixMilli(),
		})

		for _, c := range s.containers {
			data.Scripts = append(data.Scripts, snippetScript{
				URL:         s.ScriptURL(c),
				NoScriptURL: s.NoScriptURL(c),
				Async:       !s.opts.Defer,
				Defer:       s.opts.Defer || s.opts.Compatibility,
			})
		}
	}
	if dl != nil {
		data.Entries = append(data.Entries, dl.Entries()...)
	}

	var head, body bytes.Buffer
	if err := snippetTemplates.ExecuteTemplate(&head, "head", data); err != nil {
		return Snippet{}, err
	}
	if err := snippetTemplates.ExecuteTemplate(&body, "body", data); err != nil {
		return Snippet{}, err
	}

	return Snippet{
		Head: template.HTML(head.String()),
		Body: template.HTML(body.String()),
	}, nil
}

// resolveNonce 요청에 사용할 nonce를 결정합니다.
func (s *Support) resolveNonce() string {
	if s.opts.Nonce == NonceAuto {
		return s.newNonce()
	}
	return s.opts.Nonce
}
