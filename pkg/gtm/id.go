package gtm

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IDPattern 유효한 컨테이너 ID의 정규식입니다. 대소문자를 구분합니다.
const IDPattern = `^(GTM|G)-[0-9A-Z]+$`

var (
	idRegexp = regexp.MustCompile(IDPattern)

	// 마지막 '-'까지의 접두어, 그리고 [0-9A-Z] 이외의 모든 문자
	suggestionStripRegexp = regexp.MustCompile(`.*-|[^0-9A-Z]`)
)

// IsValidID id가 IDPattern과 일치하는지 반환합니다.
func IsValidID(id string) bool {
	return idRegexp.MatchString(id)
}

// ValidateID id가 유효하지 않으면 *ConfigurationError를 반환합니다.
func ValidateID(id string) error {
	if IsValidID(id) {
		return nil
	}
	return &ConfigurationError{ID: id, Suggestion: Suggest(id)}
}

// Suggest 잘못된 ID로부터 교정 제안 접미사를 만듭니다.
//
// 대문자로 변환한 뒤 마지막 '-'까지를 제거하고, [0-9A-Z] 이외의 문자를 모두 제거합니다.
// 결과가 빈 문자열일 수 있습니다. ("gtm-" -> "", "Error" -> "ERROR")
func Suggest(raw string) string {
	// cases.Caser는 상태를 가지므로 호출마다 새로 만든다.
	upper := cases.Upper(language.Und).String(raw)
	return suggestionStripRegexp.ReplaceAllString(upper, "")
}
