package gtm

import (
	"fmt"
	"maps"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

const (
	// DefaultSource GTM 스크립트의 기본 주소
	DefaultSource = "https://www.googletagmanager.com/gtm.js"

	// DefaultNoScriptSource JavaScript 비활성 환경에서 사용하는 iframe 주소
	DefaultNoScriptSource = "https://www.googletagmanager.com/ns.html"

	// DefaultDataLayerName window에 생성되는 데이터 레이어 변수 이름
	DefaultDataLayerName = "dataLayer"

	// DefaultParentElement 스크립트를 삽입할 요소의 CSS 선택자
	DefaultParentElement = "body"

	// DefaultTrackViewEventProperty TrackView가 기록하는 이벤트 이름
	DefaultTrackViewEventProperty = "content-view"

	// NonceAuto Nonce에 이 값을 지정하면 요청마다 새로운 nonce를 생성합니다.
	NonceAuto = "auto"
)

var jsIdentifierRegexp = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Options 플러그인 설정입니다. 컨테이너(ID) 외의 모든 필드는 생략할 수 있습니다.
type Options struct {
	// ID 로드할 컨테이너 (필수)
	ID Source

	// QueryParams 모든 컨테이너의 스크립트 URL에 붙는 쿼리 파라미터.
	// 같은 키가 컨테이너 레코드에도 있으면 레코드의 값이 우선합니다.
	QueryParams QueryParams

	// Defer async 대신 defer로 스크립트를 로드합니다.
	Defer bool

	// Compatibility async 스크립트에도 defer 속성을 함께 붙입니다. (구형 브라우저 호환)
	Compatibility bool

	// Nonce CSP nonce. NonceAuto이면 요청마다 생성합니다.
	Nonce string

	// Enabled 시작 시점의 추적 활성화 여부 (nil이면 true)
	Enabled *bool

	// Debug 모든 이벤트 전송을 로그로 남깁니다.
	Debug bool

	// LoadScript false면 GTM 스크립트 태그를 출력하지 않고 데이터 레이어만 채웁니다. (nil이면 true)
	LoadScript *bool

	// Source 스크립트 주소 (기본값 DefaultSource)
	Source string

	// DataLayerName 데이터 레이어 변수 이름 (기본값 DefaultDataLayerName)
	DataLayerName string

	// ParentElement Injector가 스크립트를 덧붙일 요소의 CSS 선택자 (기본값 "body")
	ParentElement string

	// TrackViews Install 시 ViewTracker 미들웨어를 함께 등록합니다.
	TrackViews bool

	// IgnoredViews 추적하지 않을 화면(라우트) 이름
	IgnoredViews []string

	// IgnoreView IgnoredViews의 함수형. true를 반환하면 추적하지 않습니다.
	IgnoreView func(name string) bool

	// TrackViewEventProperty TrackView가 기록하는 이벤트 이름 (기본값 "content-view")
	TrackViewEventProperty string

	// Recorder 이벤트 전송 결과를 받는 선택적 수집기
	Recorder Recorder
}

// Bool *bool 옵션 값을 만드는 헬퍼입니다.
func Bool(v bool) *bool {
	return &v
}

// withDefaults 기본값을 채운 복사본을 반환합니다.
func (o Options) withDefaults() Options {
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if o.DataLayerName == "" {
		o.DataLayerName = DefaultDataLayerName
	}
	if o.ParentElement == "" {
		o.ParentElement = DefaultParentElement
	}
	if o.TrackViewEventProperty == "" {
		o.TrackViewEventProperty = DefaultTrackViewEventProperty
	}
	if o.Enabled == nil {
		o.Enabled = Bool(true)
	}
	if o.LoadScript == nil {
		o.LoadScript = Bool(true)
	}
	o.QueryParams = maps.Clone(o.QueryParams)
	o.IgnoredViews = slices.Clone(o.IgnoredViews)
	return o
}

// validate 컨테이너 ID 이외의 옵션을 검사합니다. withDefaults 이후에 호출합니다.
func (o Options) validate() error {
	u, err := url.Parse(o.Source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: 스크립트 주소(source)는 http(s) 절대 URL이어야 합니다: '%s'", ErrInvalidOptions, o.Source)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("%w: 스크립트 주소(source)에 쿼리나 프래그먼트를 포함할 수 없습니다: '%s'", ErrInvalidOptions, o.Source)
	}
	if !jsIdentifierRegexp.MatchString(o.DataLayerName) {
		return fmt.Errorf("%w: 데이터 레이어 이름(data_layer_name)은 JavaScript 식별자여야 합니다: '%s'", ErrInvalidOptions, o.DataLayerName)
	}
	if strings.TrimSpace(o.ParentElement) == "" {
		return fmt.Errorf("%w: parent_element가 비어있습니다", ErrInvalidOptions)
	}
	for k := range o.QueryParams {
		if k == "" || k == "id" || k == "l" {
			return fmt.Errorf("%w: 예약된 쿼리 파라미터 이름입니다: '%s'", ErrInvalidOptions, k)
		}
	}
	return nil
}

// noScriptSource Source에 대응하는 ns.html 주소를 구합니다.
func (o Options) noScriptSource() string {
	if base, found := strings.CutSuffix(o.Source, "/gtm.js"); found {
		return base + "/ns.html"
	}
	return DefaultNoScriptSource
}
