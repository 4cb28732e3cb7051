// Package validation 설정 값(Origin, 호스트명, 포트, URL, 파일 경로)을 검증하는 함수 모음입니다.
//
// 모든 함수는 실패 시 사람이 읽을 수 있는 원인을 담은 error를 반환하며, 입력을 수정하지 않습니다.
package validation

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ValidateCORSOrigin origin이 'Scheme://Host[:Port]' 형식인지 검증합니다.
//
// '*'는 모든 출처를 의미하므로 허용합니다. 경로, 쿼리, 프래그먼트, 사용자 정보는 허용하지 않습니다.
func ValidateCORSOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	switch {
	case origin == "*":
		return nil
	case origin == "":
		return fmt.Errorf("CORS Origin은 비어있을 수 없습니다")
	case strings.HasSuffix(origin, "/"):
		return fmt.Errorf("CORS Origin은 '/'로 끝날 수 없습니다 (input=%q)", origin)
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS Origin이 유효한 URL이 아닙니다 (input=%q): %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CORS Origin은 http 또는 https만 허용됩니다 (input=%q)", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return fmt.Errorf("CORS Origin에는 경로, 쿼리, 프래그먼트, 사용자 정보를 포함할 수 없습니다 (input=%q)", origin)
	}

	return validateHostPort(u, origin)
}

// ValidateHTTPURL raw가 http(s) 절대 URL인지 검증합니다. 경로는 허용하지만 사용자 정보는 허용하지 않습니다.
func ValidateHTTPURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("유효한 URL이 아닙니다 (input=%q): %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("http 또는 https URL이어야 합니다 (input=%q)", raw)
	}
	if u.User != nil {
		return fmt.Errorf("URL에 사용자 정보를 포함할 수 없습니다 (input=%q)", raw)
	}

	return validateHostPort(u, raw)
}

func validateHostPort(u *url.URL, raw string) error {
	if portStr := u.Port(); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("포트 번호가 올바르지 않습니다 (input=%q, port=%s)", raw, portStr)
		}
		if err := ValidatePort(port); err != nil {
			return fmt.Errorf("%w (input=%q)", err, raw)
		}
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("호스트가 누락되었습니다 (input=%q)", raw)
	}
	return ValidateHostname(host)
}

// ValidatePort 포트 번호가 1-65535 범위인지 검증합니다.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("유효한 포트 범위(1-65535)가 아닙니다 (port=%d)", port)
	}
	return nil
}

// ValidateHostname host가 localhost, IP 주소, 또는 RFC 1123 호스트명인지 검증합니다.
func ValidateHostname(host string) error {
	if host == "localhost" || net.ParseIP(host) != nil {
		return nil
	}

	if len(host) > 253 {
		return fmt.Errorf("호스트명은 253자를 초과할 수 없습니다 (len=%d)", len(host))
	}

	for _, label := range strings.Split(host, ".") {
		if label == "" || len(label) > 63 {
			return fmt.Errorf("호스트명의 레이블 길이가 올바르지 않습니다 (host=%q)", host)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("레이블은 하이픈(-)으로 시작하거나 끝날 수 없습니다 (label=%q)", label)
		}
		for _, r := range label {
			if !isHostnameRune(r) {
				return fmt.Errorf("호스트명은 영문, 숫자, 하이픈(-)으로만 구성되어야 합니다 (invalid_char=%q, host=%q)", r, host)
			}
		}
	}

	return nil
}

func isHostnameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-'
}

// ValidateFile path가 읽을 수 있는 일반 파일인지 검증합니다.
func ValidateFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("파일 경로가 비어 있습니다")
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("파일이 존재하지 않습니다 (path=%q)", path)
		}
		return fmt.Errorf("파일 정보를 확인할 수 없습니다 (path=%q): %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("일반 파일이 아닙니다 (path=%q, mode=%s)", path, info.Mode())
	}

	// 권한은 Stat만으로 판단할 수 없으므로 실제로 열어본다.
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("파일을 읽을 수 없습니다 (path=%q): %w", path, err)
	}
	return f.Close()
}
