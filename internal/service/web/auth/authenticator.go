// Package auth 관리 API(추적 설정 변경 등)의 App Key 인증을 담당합니다.
package auth

import (
	"crypto/subtle"
	"sync"

	"github.com/darkkaiser/echo-gtm/internal/service/web/constants"
	"github.com/darkkaiser/echo-gtm/internal/service/web/httputil"
	applog "github.com/darkkaiser/echo-gtm/pkg/log"
)

// Authenticator 설정 파일(server.admin_keys)에 등록된 App Key로 관리 API 요청을 인증합니다.
//
// 등록된 키가 하나도 없으면 모든 요청을 거부합니다. 관리 API를 열어두는 설정은 없습니다.
//
// 동시성 안전성:
//   - sync.RWMutex로 보호되며, 여러 고루틴에서 동시에 Authenticate를 호출해도 안전합니다.
//
// 사용 예시:
//
//	authenticator := auth.NewAuthenticator(appConfig.Server.AdminKeys)
//	if err := authenticator.Authenticate(appKey); err != nil {
//	    return err // 401 Unauthorized
//	}
type Authenticator struct {
	mu      sync.RWMutex
	appKeys [][]byte
}

// NewAuthenticator 관리 API 키 목록으로 Authenticator를 생성합니다. 빈 문자열은 무시합니다.
func NewAuthenticator(appKeys []string) *Authenticator {
	a := &Authenticator{}
	for _, k := range appKeys {
		if k != "" {
			a.appKeys = append(a.appKeys, []byte(k))
		}
	}
	return a
}

// Configured 등록된 관리 API 키가 있는지 반환합니다.
func (a *Authenticator) Configured() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.appKeys) > 0
}

// Authenticate appKey가 등록된 키 중 하나와 일치하는지 검사합니다.
// 실패하면 401 Unauthorized 에러를 반환합니다.
//
// 비교는 등록된 모든 키에 대해 상수 시간으로 수행됩니다.
func (a *Authenticator) Authenticate(appKey string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if len(a.appKeys) == 0 {
		return httputil.NewUnauthorizedError(constants.ErrMsgUnauthorizedNoAdminKeys)
	}
	if appKey == "" {
		return httputil.NewUnauthorizedError(constants.ErrMsgUnauthorizedAppKeyRequired)
	}

	matched := 0
	for _, k := range a.appKeys {
		matched |= subtle.ConstantTimeCompare(k, []byte(appKey))
	}

	if matched != 1 {
		applog.WithComponentAndFields(constants.ComponentMiddlewareAuth, applog.Fields{
			"received_app_key": applog.MaskSensitiveData(appKey),
		}).Warn(constants.LogMsgAppKeyMismatch)

		return httputil.NewUnauthorizedError(constants.ErrMsgUnauthorizedInvalidAppKey)
	}

	return nil
}
