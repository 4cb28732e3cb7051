package constants

// 클라이언트에게 반환되는 에러 메시지 상수입니다.
const (
	// 400 Bad Request
	ErrMsgBadRequest            = "잘못된 요청입니다"
	ErrMsgBadRequestInvalidJSON = "잘못된 JSON 형식입니다"
	ErrMsgBadRequestInvalidBody = "요청 본문을 파싱할 수 없습니다. JSON 형식을 확인해주세요"
	ErrMsgBadRequestEmptyBody   = "요청 본문이 비어있습니다"
	ErrMsgBadRequestUnknownKind = "kind는 'event' 또는 'view'여야 합니다"
	ErrMsgBadRequestIDs         = "ids 형식을 해석할 수 없습니다"

	// 401 Unauthorized
	ErrMsgUnauthorizedAppKeyRequired = "X-App-Key 헤더는 필수입니다"
	ErrMsgUnauthorizedInvalidAppKey  = "app_key가 유효하지 않습니다"
	ErrMsgUnauthorizedNoAdminKeys    = "관리 API 키가 설정되지 않아 요청을 처리할 수 없습니다"

	// 404 Not Found
	ErrMsgNotFound = "요청한 리소스를 찾을 수 없습니다"

	// 413 Request Entity Too Large
	ErrMsgRequestEntityTooLarge = "요청 본문이 너무 큽니다"

	// 415 Unsupported Media Type
	ErrMsgUnsupportedMediaType = "지원하지 않는 Content-Type 형식입니다. application/json으로 요청해주세요"

	// 429 Too Many Requests
	ErrMsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"

	// 500 Internal Server Error
	ErrMsgInternalServer = "내부 서버 오류가 발생했습니다"
)

// 내부 로깅을 위한 메시지 상수입니다.
const (
	LogMsgServiceStarting       = "웹 서비스 시작중..."
	LogMsgServiceStarted        = "웹 서비스 시작됨"
	LogMsgServiceAlreadyStarted = "웹 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping       = "웹 서비스 중지중..."
	LogMsgServiceStopped        = "웹 서비스 중지됨"
	LogMsgServiceUnexpectedExit = "웹 서비스가 예기치 않게 종료되었습니다"

	LogMsgServiceHTTPServerStarting      = "웹 서비스 > http 서버 시작"
	LogMsgServiceHTTPServerStopped       = "웹 서비스 > http 서버 중지됨"
	LogMsgServiceHTTPServerShutdownError = "웹 서비스 > http 서버 종료 중 오류 발생"
	LogMsgServiceHTTPServerFatalError    = "웹 서비스 > http 서버를 구성하는 중에 치명적인 오류가 발생하였습니다."

	LogMsgHTTP4xxClientError = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "HTTP 5xx: 서버 내부 오류"

	LogMsgAppKeyMismatch         = "APP_KEY 불일치"
	LogMsgUnsupportedContentType = "지원하지 않는 Content-Type 요청"

	LogMsgTrackingChanged = "GTM 추적 설정 변경 요청 처리"
	LogMsgIDValidation    = "GTM-ID 검증 실패"
)

// 패닉 메시지 상수입니다.
const (
	PanicMsgAppConfigRequired     = "AppConfig는 필수입니다"
	PanicMsgAuthenticatorRequired = "Authenticator는 필수입니다"
	PanicMsgRecorderRequired      = "metrics.Recorder는 필수입니다"
	PanicMsgSupportRequired       = "gtm.Support는 필수입니다"
)
