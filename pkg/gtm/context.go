package gtm

import (
	"context"

	"github.com/labstack/echo/v4"
)

const (
	// supportContextKey Support를 echo.Context에 저장할 때 사용하는 키
	supportContextKey = "darkkaiser/echo-gtm/gtm/support"

	// dataLayerContextKey 요청 단위 DataLayer를 저장할 때 사용하는 키
	dataLayerContextKey = "darkkaiser/echo-gtm/gtm/datalayer"

	// nonceContextKey 요청 단위 CSP nonce를 저장할 때 사용하는 키
	nonceContextKey = "darkkaiser/echo-gtm/gtm/nonce"
)

type stdContextKey struct{ name string }

var (
	supportStdKey   = &stdContextKey{"support"}
	dataLayerStdKey = &stdContextKey{"datalayer"}
)

// FromContext 등록된 Support를 반환합니다.
//
// Install로 등록되지 않았으면 (nil, false)를 반환합니다.
// 같은 애플리케이션 안에서는 항상 동일한 포인터가 반환됩니다.
func FromContext(c echo.Context) (*Support, bool) {
	s, ok := c.Get(supportContextKey).(*Support)
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}

// MustFromContext 등록된 Support를 반환합니다.
//
// 등록되지 않은 경우 panic이 발생하므로, 반드시 Install 이후의 라우트에서만 사용해야 합니다.
func MustFromContext(c echo.Context) *Support {
	s, ok := FromContext(c)
	if !ok {
		panic("gtm: Support가 등록되지 않았습니다 (gtm.Install이 호출되었는지 확인하세요)")
	}
	return s
}

// DataLayerFromContext 현재 요청의 DataLayer를 반환합니다. 등록되지 않았으면 nil입니다.
func DataLayerFromContext(c echo.Context) *DataLayer {
	dl, _ := c.Get(dataLayerContextKey).(*DataLayer)
	return dl
}

// NonceFromContext 현재 요청의 CSP nonce를 반환합니다.
func NonceFromContext(c echo.Context) string {
	nonce, _ := c.Get(nonceContextKey).(string)
	return nonce
}

// NewContext Support와 DataLayer를 담은 context.Context를 반환합니다.
func NewContext(ctx context.Context, s *Support, dl *DataLayer) context.Context {
	ctx = context.WithValue(ctx, supportStdKey, s)
	return context.WithValue(ctx, dataLayerStdKey, dl)
}

// FromStdContext net/http 핸들러 등 echo.Context가 없는 곳에서 사용하는 FromContext입니다.
func FromStdContext(ctx context.Context) (*Support, bool) {
	s, ok := ctx.Value(supportStdKey).(*Support)
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}

// DataLayerFromStdContext context.Context에 담긴 DataLayer를 반환합니다. 없으면 nil입니다.
func DataLayerFromStdContext(ctx context.Context) *DataLayer {
	dl, _ := ctx.Value(dataLayerStdKey).(*DataLayer)
	return dl
}

// TrackEvent 현재 요청의 데이터 레이어에 이벤트를 기록하는 단축 함수입니다.
// Support가 등록되지 않았으면 false를 반환합니다.
func TrackEvent(c echo.Context, ev Event) bool {
	s, ok := FromContext(c)
	if !ok {
		return false
	}
	return s.TrackEvent(DataLayerFromContext(c), ev)
}

// RenderSnippet 현재 요청의 데이터 레이어와 nonce로 Snippet을 렌더링합니다.
// 템플릿 렌더러에서 사용합니다.
func RenderSnippet(c echo.Context) (Snippet, error) {
	s, ok := FromContext(c)
	if !ok {
		return Snippet{}, nil
	}
	return s.Snippet(DataLayerFromContext(c), NonceFromContext(c))
}
