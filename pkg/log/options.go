package log

import (
	"fmt"
	"os"
)

// Options 로그 시스템 구성 옵션입니다.
type Options struct {
	Name  string // 로그 파일명에 사용할 애플리케이션 식별자
	Dir   string // 로그 디렉토리 (빈 값이면 "logs")
	Level Level  // 로그 레벨 (0이면 Info)

	MaxAge     int // 보관 기간(일), 0이면 삭제하지 않음
	MaxSizeMB  int // 파일당 최대 크기, 0이면 기본값
	MaxBackups int // 백업 파일 수, 0이면 기본값

	EnableCriticalLog bool // ERROR 이상을 별도 파일에도 기록
	EnableVerboseLog  bool // DEBUG 이하를 메인 파일 대신 별도 파일에 기록
	EnableConsoleLog  bool // 표준 출력에도 기록

	ReportCaller     bool   // 호출 위치 기록
	CallerPathPrefix string // 호출 위치에서 잘라낼 패키지 경로 prefix
}

// Validate 옵션 값이 유효한지 검사합니다.
func (o *Options) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}
	if o.Dir != "" {
		if info, err := os.Stat(o.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", o.Dir)
		}
	}
	if o.MaxAge < 0 || o.MaxSizeMB < 0 || o.MaxBackups < 0 {
		return fmt.Errorf("로그 보관 정책 값은 0 이상이어야 합니다 (max_age=%d, max_size_mb=%d, max_backups=%d)", o.MaxAge, o.MaxSizeMB, o.MaxBackups)
	}
	return nil
}
