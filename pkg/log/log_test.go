package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithComponentAndFields(t *testing.T) {
	fields := Fields{"id": "GTM-X"}

	entry := WithComponentAndFields("gtm", fields)

	assert.Equal(t, "gtm", entry.Data["component"])
	assert.Equal(t, "GTM-X", entry.Data["id"])
	assert.NotContains(t, fields, "component", "입력 맵은 변경되지 않아야 합니다")
}

func TestMaskSensitiveData(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "***"},
		{"abcdefgh", "abcd***"},
		{"abcdefghijklmnop", "abcd***mnop"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskSensitiveData(tt.in), tt.in)
	}
}

func TestOptions_Validate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	assert.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"정상", Options{Name: "echo-gtm"}, false},
		{"이름 누락", Options{}, true},
		{"디렉토리 경로가 파일", Options{Name: "a", Dir: file}, true},
		{"음수 보관 기간", Options{Name: "a", MaxAge: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfiles(t *testing.T) {
	prod := NewProductionOptions("echo-gtm")
	dev := NewDevelopmentOptions("echo-gtm")

	assert.Equal(t, InfoLevel, prod.Level)
	assert.True(t, prod.EnableCriticalLog)
	assert.False(t, prod.EnableConsoleLog)

	assert.Equal(t, TraceLevel, dev.Level)
	assert.True(t, dev.EnableConsoleLog)
	assert.NoError(t, dev.Validate())
}

func TestNewRotatingWriter(t *testing.T) {
	w := newRotatingWriter("logs", "echo-gtm", "critical", Options{})

	assert.Equal(t, filepath.Join("logs", "echo-gtm.critical.log"), w.Filename)
	assert.Equal(t, defaultMaxSizeMB, w.MaxSize)
	assert.Equal(t, defaultMaxBackups, w.MaxBackups)
}
