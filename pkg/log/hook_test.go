package log

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mocks
// =============================================================================

type MockCloser struct {
	mock.Mock
}

func (m *MockCloser) Close() error {
	return m.Called().Error(0)
}

type MockSyncCloser struct {
	MockCloser
}

func (m *MockSyncCloser) Sync() error {
	return m.Called().Error(0)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

// =============================================================================
// hook
// =============================================================================

func newTestEntry(level Level, msg string) *Entry {
	e := logrus.NewEntry(logrus.New())
	e.Level = level
	e.Message = msg
	return e
}

func TestHook_Fire_Routing(t *testing.T) {
	tests := []struct {
		name         string
		level        Level
		withVerbose  bool
		wantMain     bool
		wantCritical bool
		wantVerbose  bool
	}{
		{"Error는 main과 critical에 기록", ErrorLevel, true, true, true, false},
		{"Info는 main에만 기록", InfoLevel, true, true, false, false},
		{"Debug는 verbose에만 기록", DebugLevel, true, false, false, true},
		{"verbose가 없으면 Debug도 main에 기록", DebugLevel, false, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			var mainBuf, criticalBuf, verboseBuf, consoleBuf bytes.Buffer
			h := &hook{
				mainWriter:     &mainBuf,
				criticalWriter: &criticalBuf,
				consoleWriter:  &consoleBuf,
				formatter:      &logrus.TextFormatter{DisableTimestamp: true},
			}
			if tt.withVerbose {
				h.verboseWriter = &verboseBuf
			}

			// When
			err := h.Fire(newTestEntry(tt.level, "dispatch"))

			// Then
			require.NoError(t, err)
			assert.Equal(t, tt.wantMain, mainBuf.Len() > 0, "main")
			assert.Equal(t, tt.wantCritical, criticalBuf.Len() > 0, "critical")
			assert.Equal(t, tt.wantVerbose, verboseBuf.Len() > 0, "verbose")
			assert.Contains(t, consoleBuf.String(), "dispatch", "콘솔에는 모든 레벨이 기록되어야 합니다")
		})
	}
}

func TestHook_Fire_WriterError(t *testing.T) {
	// Given
	var mainBuf bytes.Buffer
	h := &hook{
		mainWriter:     &mainBuf,
		criticalWriter: failingWriter{},
		formatter:      &logrus.TextFormatter{DisableTimestamp: true},
	}

	// When
	err := h.Fire(newTestEntry(ErrorLevel, "boom"))

	// Then
	require.Error(t, err)
	assert.Contains(t, mainBuf.String(), "boom", "critical 실패와 무관하게 main에는 기록되어야 합니다")
}

func TestHook_Close(t *testing.T) {
	var buf bytes.Buffer
	h := &hook{mainWriter: &buf, formatter: &logrus.TextFormatter{}}

	require.NoError(t, h.Close())
	require.NoError(t, h.Fire(newTestEntry(InfoLevel, "after close")))

	assert.Zero(t, buf.Len())
}

// =============================================================================
// closer
// =============================================================================

func TestCloser_Close(t *testing.T) {
	t.Run("일부 실패해도 나머지를 모두 닫음", func(t *testing.T) {
		m1, m2 := new(MockCloser), new(MockCloser)
		m1.On("Close").Return(errors.New("fail")).Once()
		m2.On("Close").Return(nil).Once()
		h := &hook{}

		c := &closer{closers: []io.Closer{m1, nil, m2}, hook: h}

		assert.Error(t, c.Close())
		assert.True(t, h.closed)
		m1.AssertExpectations(t)
		m2.AssertExpectations(t)
	})

	t.Run("중복 호출은 무시", func(t *testing.T) {
		m := new(MockCloser)
		m.On("Close").Return(nil).Once()
		c := &closer{closers: []io.Closer{m}}

		assert.NoError(t, c.Close())
		assert.NoError(t, c.Close())
		m.AssertExpectations(t)
	})

	t.Run("Sync를 지원하면 Close 전에 호출", func(t *testing.T) {
		m := new(MockSyncCloser)
		m.On("Sync").Return(errors.New("ignored")).Once()
		m.On("Close").Return(nil).Once()
		c := &closer{closers: []io.Closer{m}}

		assert.NoError(t, c.Close())
		m.AssertExpectations(t)
	})
}
