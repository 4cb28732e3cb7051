// Package middleware 웹 서버에 공통으로 적용되는 echo 미들웨어를 제공합니다.
//
// 패닉 복구, 요청 로깅, IP별 속도 제한, 관리 API 인증, Content-Type 검증과
// echo.Logger를 애플리케이션 로거로 연결하는 어댑터가 포함됩니다.
package middleware
