package gtm

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) ObserveDispatch(kind, event string, delivered bool) {
	m.Called(kind, event, delivered)
}

func newTestSupport(t *testing.T, opts Options) *Support {
	t.Helper()

	if opts.ID == nil {
		opts.ID = ID("GTM-DEMO")
	}
	s, err := New(opts)
	require.NoError(t, err)

	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	s.newNonce = func() string { return "test-nonce" }
	return s
}

// TestNew 생성 시 검증 순서와 기본값을 검증합니다.
func TestNew(t *testing.T) {
	t.Run("성공: 기본값 적용", func(t *testing.T) {
		s, err := New(Options{ID: ID("GTM-DEMO")})

		require.NoError(t, err)
		assert.True(t, s.Enabled())
		assert.False(t, s.DebugEnabled())
		assert.Equal(t, []Container{{ID: "GTM-DEMO"}}, s.Containers())

		opts := s.Options()
		assert.Equal(t, DefaultSource, opts.Source)
		assert.Equal(t, DefaultDataLayerName, opts.DataLayerName)
		assert.Equal(t, DefaultParentElement, opts.ParentElement)
		assert.Equal(t, DefaultTrackViewEventProperty, opts.TrackViewEventProperty)
		assert.True(t, *opts.LoadScript)
	})

	t.Run("성공: 시작 시 비활성화", func(t *testing.T) {
		s, err := New(Options{ID: ID("GTM-DEMO"), Enabled: Bool(false), Debug: true})

		require.NoError(t, err)
		assert.False(t, s.Enabled())
		assert.True(t, s.DebugEnabled())
	})

	t.Run("실패: 잘못된 ID는 ConfigurationError", func(t *testing.T) {
		s, err := New(Options{ID: IDs("GTM-OK", "gtm-a")})

		assert.Nil(t, s)
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "gtm-a", cfgErr.ID)
	})

	t.Run("실패: ID가 잘못되면 다른 옵션보다 먼저 보고", func(t *testing.T) {
		_, err := New(Options{ID: ID("bad"), Source: "ftp://x"})

		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
		assert.NotErrorIs(t, err, ErrInvalidOptions)
	})

	optionErrors := []struct {
		name string
		opts Options
	}{
		{"상대 경로 source", Options{Source: "/gtm.js"}},
		{"http(s)가 아닌 source", Options{Source: "ftp://example.com/gtm.js"}},
		{"쿼리를 포함한 source", Options{Source: "https://example.com/gtm.js?id=x"}},
		{"식별자가 아닌 data layer 이름", Options{DataLayerName: "data-layer"}},
		{"공백 parent element", Options{ParentElement: "  "}},
		{"예약된 쿼리 파라미터 id", Options{QueryParams: QueryParams{"id": "x"}}},
		{"예약된 쿼리 파라미터 l", Options{QueryParams: QueryParams{"l": "x"}}},
	}
	for _, tt := range optionErrors {
		t.Run("실패: "+tt.name, func(t *testing.T) {
			tt.opts.ID = ID("GTM-DEMO")

			_, err := New(tt.opts)

			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}

// TestSupport_Containers 반환된 목록을 수정해도 내부 상태가 변하지 않는지 검증합니다.
func TestSupport_Containers(t *testing.T) {
	s := newTestSupport(t, Options{ID: Record(Container{ID: "GTM-A", QueryParams: QueryParams{"gtm_auth": "x"}})})

	got := s.Containers()
	got[0].ID = "GTM-CHANGED"
	got[0].QueryParams["gtm_auth"] = "changed"

	assert.Equal(t, []Container{{ID: "GTM-A", QueryParams: QueryParams{"gtm_auth": "x"}}}, s.Containers())
}

// TestSupport_TrackView 화면 조회 항목의 형태를 검증합니다.
func TestSupport_TrackView(t *testing.T) {
	t.Run("성공: extra 필드 뒤에 고정 필드가 덮어씀", func(t *testing.T) {
		s := newTestSupport(t, Options{})
		dl := NewDataLayer()

		ok := s.TrackView(dl, "Home", "/", Fields{"lang": "ko", "event": "ignored"})

		require.True(t, ok)
		assert.Equal(t, []Fields{{
			"lang":              "ko",
			"event":             "content-view",
			"content-name":      "/",
			"content-view-name": "Home",
		}}, dl.Entries())
	})

	t.Run("성공: 사용자 지정 이벤트 이름", func(t *testing.T) {
		s := newTestSupport(t, Options{TrackViewEventProperty: "page-view"})
		dl := NewDataLayer()

		s.TrackView(dl, "About", "/about", nil)

		assert.Equal(t, "page-view", dl.Entries()[0]["event"])
	})

	t.Run("비활성화 상태에서는 기록하지 않음", func(t *testing.T) {
		s := newTestSupport(t, Options{Enabled: Bool(false), Debug: true})
		dl := NewDataLayer()

		ok := s.TrackView(dl, "Home", "/", nil)

		assert.False(t, ok)
		assert.Zero(t, dl.Len())
	})

	t.Run("DataLayer가 없으면 기록하지 않음", func(t *testing.T) {
		s := newTestSupport(t, Options{})

		assert.False(t, s.TrackView(nil, "Home", "/", nil))
	})
}

// TestSupport_TrackEvent 상호작용 이벤트의 기본값과 Extra 병합을 검증합니다.
func TestSupport_TrackEvent(t *testing.T) {
	t.Run("기본값", func(t *testing.T) {
		s := newTestSupport(t, Options{})
		dl := NewDataLayer()

		ok := s.TrackEvent(dl, Event{})

		require.True(t, ok)
		assert.Equal(t, []Fields{{
			"event":             "interaction",
			"target":            "interaction",
			"action":            "",
			"target-properties": "",
			"value":             nil,
			"interaction-type":  false,
		}}, dl.Entries())
	})

	t.Run("모든 필드와 Extra", func(t *testing.T) {
		s := newTestSupport(t, Options{})
		dl := NewDataLayer()

		s.TrackEvent(dl, Event{
			Event:          "purchase",
			Category:       "shop",
			Action:         "click",
			Label:          "buy-button",
			Value:          3,
			NonInteraction: true,
			Extra:          Fields{"currency": "KRW", "action": "override"},
		})

		entry := dl.Entries()[0]
		assert.Equal(t, "purchase", entry["event"])
		assert.Equal(t, "shop", entry["target"])
		assert.Equal(t, "override", entry["action"])
		assert.Equal(t, "buy-button", entry["target-properties"])
		assert.Equal(t, 3, entry["value"])
		assert.Equal(t, true, entry["interaction-type"])
		assert.Equal(t, "KRW", entry["currency"])
	})
}

// TestSupport_Recorder 전송 결과가 Recorder로 전달되는지 검증합니다.
func TestSupport_Recorder(t *testing.T) {
	rec := &mockRecorder{}
	rec.On("ObserveDispatch", KindView, "content-view", true).Once()
	rec.On("ObserveDispatch", KindEvent, "signup", true).Once()
	rec.On("ObserveDispatch", KindEvent, "interaction", false).Once()

	s := newTestSupport(t, Options{Recorder: rec})
	dl := NewDataLayer()

	s.TrackView(dl, "Home", "/", nil)
	s.TrackEvent(dl, Event{Event: "signup"})
	s.Enable(false)
	s.TrackEvent(dl, Event{})

	rec.AssertExpectations(t)
	assert.Equal(t, 2, dl.Len())
}

// TestSupport_EnableConcurrent 여러 고루틴에서 상태를 바꾸고 이벤트를 기록해도 안전한지 검증합니다.
func TestSupport_EnableConcurrent(t *testing.T) {
	s := newTestSupport(t, Options{})
	dl := NewDataLayer()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.Enable(i%2 == 0)
		}(i)
		go func() {
			defer wg.Done()
			s.TrackEvent(dl, Event{Action: "tick"})
		}()
	}
	wg.Wait()

	s.Enable(true)
	assert.True(t, s.Enabled())
	assert.LessOrEqual(t, dl.Len(), 20)
}

// TestSupport_ScriptURL 쿼리 파라미터 순서와 병합 규칙을 검증합니다.
func TestSupport_ScriptURL(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		container Container
		want      string
		wantNS    string
	}{
		{
			name:      "기본",
			container: Container{ID: "GTM-DEMO"},
			want:      "https://www.googletagmanager.com/gtm.js?id=GTM-DEMO",
			wantNS:    "https://www.googletagmanager.com/ns.html?id=GTM-DEMO",
		},
		{
			name: "전역 파라미터와 컨테이너 파라미터 병합",
			opts: Options{QueryParams: QueryParams{"gtm_auth": "global", "gtm_preview": "env-1"}},
			container: Container{ID: "GTM-DEMO", QueryParams: QueryParams{
				"gtm_auth":        "local",
				"gtm_cookies_win": "x",
			}},
			want:   "https://www.googletagmanager.com/gtm.js?id=GTM-DEMO&gtm_auth=local&gtm_cookies_win=x&gtm_preview=env-1",
			wantNS: "https://www.googletagmanager.com/ns.html?id=GTM-DEMO&gtm_auth=local&gtm_cookies_win=x&gtm_preview=env-1",
		},
		{
			name:      "사용자 지정 데이터 레이어 이름",
			opts:      Options{DataLayerName: "myLayer"},
			container: Container{ID: "G-X"},
			want:      "https://www.googletagmanager.com/gtm.js?id=G-X&l=myLayer",
			wantNS:    "https://www.googletagmanager.com/ns.html?id=G-X&l=myLayer",
		},
		{
			name:      "사용자 지정 source와 이스케이프",
			opts:      Options{Source: "https://tags.example.com/custom.js"},
			container: Container{ID: "GTM-A", QueryParams: QueryParams{"gtm_auth": "a b&c", "id": "ignored"}},
			want:      "https://tags.example.com/custom.js?id=GTM-A&gtm_auth=a+b%26c",
			wantNS:    DefaultNoScriptSource + "?id=GTM-A&gtm_auth=a+b%26c",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSupport(t, tt.opts)

			assert.Equal(t, tt.want, s.ScriptURL(tt.container))
			assert.Equal(t, tt.wantNS, s.NoScriptURL(tt.container))
		})
	}
}

// TestSupport_IsIgnoredView 목록과 함수형 제외 조건을 검증합니다.
func TestSupport_IsIgnoredView(t *testing.T) {
	s := newTestSupport(t, Options{
		IgnoredViews: []string{"health"},
		IgnoreView:   func(name string) bool { return name == "admin" },
	})

	assert.True(t, s.IsIgnoredView("health"))
	assert.True(t, s.IsIgnoredView("admin"))
	assert.False(t, s.IsIgnoredView("home"))
}
