// Package log 애플리케이션 전역 로거(logrus)를 감싸는 얇은 래퍼입니다.
//
// 모든 로그는 component 필드를 가지며, WithComponent / WithComponentAndFields를 통해
// 일관된 형태로 기록합니다. 파일 출력과 로테이션은 Setup에서 구성합니다.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// StandardLogger 전역 logrus 로거를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// WithComponent component 필드를 포함한 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 Entry를 반환합니다.
// 전달한 fields 맵은 수정하지 않습니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["component"] = component
	return logrus.WithFields(merged)
}

// WithFields 전역 로거에 필드를 붙인 Entry를 반환합니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

func SetFormatter(f Formatter) {
	logrus.SetFormatter(f)
}

func SetLevel(level Level) {
	logrus.SetLevel(level)
}

// SetDebugMode 디버그 모드면 Trace, 아니면 Info 레벨로 설정합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
		return
	}
	logrus.SetLevel(InfoLevel)
}

// MaskSensitiveData 토큰이나 키를 로그에 남길 때 앞뒤 일부만 남기고 가립니다.
func MaskSensitiveData(data string) string {
	switch {
	case data == "":
		return ""
	case len(data) <= 3:
		return "***"
	case len(data) <= 12:
		return data[:4] + "***"
	default:
		return data[:4] + "***" + data[len(data)-4:]
	}
}
