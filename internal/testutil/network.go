// Package testutil 웹 서비스 통합 테스트에서 공유하는 헬퍼를 제공합니다.
package testutil

import (
	"crypto/tls"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// FreePort 사용 가능한 로컬 TCP 포트를 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "사용 가능한 포트를 가져오는데 실패했습니다")
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// NewHTTPClient 연결을 재사용하지 않는 테스트용 클라이언트를 생성합니다.
// 자체 서명 인증서를 신뢰하며, 테스트가 끝난 뒤 유휴 연결 고루틴이 남지 않습니다.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 2 * time.Second,
		Transport: &http.Transport{
			DisableKeepAlives: true,
			TLSClientConfig:   &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // 테스트 전용
		},
	}
}

// WaitForStatus url이 wantStatus로 응답할 때까지 기다립니다.
func WaitForStatus(t testing.TB, client *http.Client, url string, wantStatus int) {
	t.Helper()

	require.Eventually(t, func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == wantStatus
	}, 3*time.Second, 20*time.Millisecond, "서버가 %s 에서 응답하지 않습니다", url)
}
