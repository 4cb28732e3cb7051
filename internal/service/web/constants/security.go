package constants

// HeaderXAppKey 관리 API 인증용 HTTP 헤더 키
const HeaderXAppKey = "X-App-Key"
