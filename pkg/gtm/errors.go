package gtm

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions 컨테이너 ID 이외의 옵션 값이 잘못된 경우 반환되는 에러의 원인입니다.
var ErrInvalidOptions = errors.New("gtm: invalid options")

// ConfigurationError 컨테이너 ID가 GTM-ID 형식이 아닐 때 반환됩니다.
//
// 메시지는 입력값만으로 결정되며 교정 제안(Suggestion)을 포함합니다.
//
//	'gtm-a' is not a valid GTM-ID (/^(GTM|G)-[0-9A-Z]+$/). Did you mean 'GTM-A' or 'G-A'?
type ConfigurationError struct {
	// ID 검증에 실패한 원본 값
	ID string

	// Suggestion Suggest(ID)의 결과
	Suggestion string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("'%s' is not a valid GTM-ID (/%s/). Did you mean 'GTM-%s' or 'G-%s'?", e.ID, IDPattern, e.Suggestion, e.Suggestion)
}
