package errors

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	Internal

	// System 파일, 네트워크 등 실행 환경의 오류
	System

	// InvalidInput 설정값이나 요청 본문이 유효하지 않음
	InvalidInput

	// NotFound 요청한 리소스를 찾을 수 없음
	NotFound

	// Unavailable 일시적으로 사용할 수 없음 (추적 비활성화 등)
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:      "Unknown",
	Internal:     "Internal",
	System:       "System",
	InvalidInput: "InvalidInput",
	NotFound:     "NotFound",
	Unavailable:  "Unavailable",
}

// String 에러 타입의 이름을 반환합니다.
func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(?)"
	}
	return errorTypeNames[t]
}
