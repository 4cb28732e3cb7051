package gtm

import (
	"maps"
	"net/url"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	applog "github.com/darkkaiser/echo-gtm/pkg/log"
	"github.com/google/uuid"
)

const component = "gtm"

// 이벤트 종류 (Recorder에 전달됨)
const (
	KindView  = "view"
	KindEvent = "event"
)

// Recorder 이벤트 전송 결과를 수집합니다. (예: Prometheus 카운터)
type Recorder interface {
	// ObserveDispatch delivered는 실제로 데이터 레이어에 기록되었는지 여부입니다.
	ObserveDispatch(kind, event string, delivered bool)
}

// Event TrackEvent로 전송할 상호작용 이벤트입니다.
type Event struct {
	Event          string // 기본값 "interaction"
	Category       string // target, 기본값 "interaction"
	Action         string
	Label          string // target-properties
	Value          any
	NonInteraction bool // interaction-type

	// Extra 위 필드 이후에 덧붙는 사용자 정의 필드. 같은 키가 있으면 Extra가 우선합니다.
	Extra Fields
}

// ViewMeta 라우트별 화면 추적 메타데이터입니다.
type ViewMeta struct {
	// Name 라우트 이름 대신 사용할 화면 이름
	Name string

	// Data TrackView에 함께 기록할 추가 필드
	Data Fields
}

// Support 애플리케이션당 하나씩 등록되는 GTM 핸들입니다. 동시에 사용해도 안전합니다.
type Support struct {
	opts       Options
	containers []Container

	enabled atomic.Bool
	debug   atomic.Bool

	viewMu   sync.RWMutex
	viewMeta map[string]ViewMeta

	// generatedRouteNames Install 이후 추가된 라우트에 echo가 붙인 이름 (키: method+path)
	routeMu             sync.RWMutex
	generatedRouteNames map[string]string

	now      func() time.Time
	newNonce func() string
}

// New 옵션을 검증하고 Support를 생성합니다.
//
// 컨테이너 ID가 잘못되면 *ConfigurationError를, 그 밖의 옵션이 잘못되면 ErrInvalidOptions를 감싼 에러를 반환합니다.
// 에러가 반환되면 아무것도 등록되지 않습니다.
func New(opts Options) (*Support, error) {
	containers, err := Validate(opts.ID)
	if err != nil {
		return nil, err
	}

	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	s := &Support{
		opts:       opts,
		containers: containers,
		viewMeta:   make(map[string]ViewMeta),
		now:        time.Now,
		newNonce:   uuid.NewString,

		generatedRouteNames: make(map[string]string),
	}
	s.enabled.Store(*opts.Enabled)
	s.debug.Store(opts.Debug)

	return s, nil
}

// Containers 검증된 컨테이너 목록의 복사본을 반환합니다.
func (s *Support) Containers() []Container {
	out := make([]Container, len(s.containers))
	for i, c := range s.containers {
		out[i] = Container{ID: c.ID, QueryParams: maps.Clone(c.QueryParams)}
	}
	return out
}

// Options 기본값이 채워진 옵션을 반환합니다.
func (s *Support) Options() Options {
	return s.opts.withDefaults()
}

// Enabled 추적이 활성화되어 있는지 반환합니다.
func (s *Support) Enabled() bool {
	return s.enabled.Load()
}

// Enable 추적을 켜거나 끕니다. 꺼져 있는 동안에는 스니펫이 출력되지 않고 이벤트도 기록되지 않습니다.
func (s *Support) Enable(enabled bool) {
	s.enabled.Store(enabled)

	applog.WithComponentAndFields(component, applog.Fields{
		"enabled": enabled,
	}).Info("GTM 추적 상태 변경")
}

// DebugEnabled 디버그 로그가 켜져 있는지 반환합니다.
func (s *Support) DebugEnabled() bool {
	return s.debug.Load()
}

// Debug 디버그 로그를 켜거나 끕니다.
func (s *Support) Debug(enabled bool) {
	s.debug.Store(enabled)
}

// SetViewMeta 라우트 이름에 화면 이름/추가 필드를 연결합니다.
func (s *Support) SetViewMeta(routeName string, meta ViewMeta) {
	s.viewMu.Lock()
	defer s.viewMu.Unlock()

	s.viewMeta[routeName] = meta
}

func (s *Support) lookupViewMeta(routeName string) (ViewMeta, bool) {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()

	meta, ok := s.viewMeta[routeName]
	return meta, ok
}

// IsIgnoredView name이 추적 제외 대상인지 반환합니다.
func (s *Support) IsIgnoredView(name string) bool {
	if slices.Contains(s.opts.IgnoredViews, name) {
		return true
	}
	return s.opts.IgnoreView != nil && s.opts.IgnoreView(name)
}

// TrackView 화면 조회 이벤트를 데이터 레이어에 기록합니다.
//
// 기록되는 항목: extra의 필드 + event, content-name(path), content-view-name(screenName)
// 추적이 꺼져 있거나 dl이 nil이면 기록하지 않고 false를 반환합니다.
func (s *Support) TrackView(dl *DataLayer, screenName, path string, extra Fields) bool {
	trigger := s.Enabled() && dl != nil

	if s.DebugEnabled() {
		s.logDispatch("Dispatching TrackView", trigger, applog.Fields{
			"screen_name": screenName,
			"path":        path,
		})
	}

	event := s.opts.TrackViewEventProperty
	if trigger {
		entry := make(Fields, len(extra)+3)
		for k, v := range extra {
			entry[k] = v
		}
		entry["event"] = event
		entry["content-name"] = path
		entry["content-view-name"] = screenName
		dl.Push(entry)
	}

	s.observe(KindView, event, trigger)

	return trigger
}

// TrackEvent 상호작용 이벤트를 데이터 레이어에 기록합니다.
// 추적이 꺼져 있거나 dl이 nil이면 기록하지 않고 false를 반환합니다.
func (s *Support) TrackEvent(dl *DataLayer, ev Event) bool {
	trigger := s.Enabled() && dl != nil

	if ev.Event == "" {
		ev.Event = "interaction"
	}
	if ev.Category == "" {
		ev.Category = "interaction"
	}

	entry := Fields{
		"event":             ev.Event,
		"target":            ev.Category,
		"action":            ev.Action,
		"target-properties": ev.Label,
		"value":             ev.Value,
		"interaction-type":  ev.NonInteraction,
	}
	for k, v := range ev.Extra {
		entry[k] = v
	}

	if s.DebugEnabled() {
		s.logDispatch("Dispatching event", trigger, applog.Fields(entry))
	}

	if trigger {
		dl.Push(entry)
	}

	s.observe(KindEvent, ev.Event, trigger)

	return trigger
}

func (s *Support) logDispatch(msg string, trigger bool, fields applog.Fields) {
	prefix := "[GTM-Support]: "
	if !trigger {
		prefix = "[GTM-Support(disabled)]: "
	}
	applog.WithComponentAndFields(component, fields).Info(prefix + msg)
}

func (s *Support) observe(kind, event string, delivered bool) {
	if s.opts.Recorder != nil {
		s.opts.Recorder.ObserveDispatch(kind, event, delivered)
	}
}

// ScriptURL 컨테이너의 gtm.js 주소를 만듭니다. id가 항상 첫 번째 파라미터입니다.
func (s *Support) ScriptURL(c Container) string {
	return s.opts.Source + "?" + s.query(c)
}

// NoScriptURL 컨테이너의 ns.html(iframe) 주소를 만듭니다.
func (s *Support) NoScriptURL(c Container) string {
	return s.opts.noScriptSource() + "?" + s.query(c)
}

func (s *Support) query(c Container) string {
	params := make(map[string]string, len(s.opts.QueryParams)+len(c.QueryParams)+1)
	for k, v := range s.opts.QueryParams {
		params[k] = v
	}
	for k, v := range c.QueryParams {
		params[k] = v
	}
	if s.opts.DataLayerName != DefaultDataLayerName {
		params["l"] = s.opts.DataLayerName
	}
	delete(params, "id")

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("id=")
	sb.WriteString(url.QueryEscape(c.ID))
	for _, k := range keys {
		sb.WriteByte('&')
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(params[k]))
	}
	return sb.String()
}
