package errors

import (
	"path/filepath"
	"runtime"
)

// callerSkip runtime.Callers, captureStack, 공개 생성 함수(New/Wrap 등)를 건너뛰어
// 호출한 쪽의 위치가 첫 번째 프레임이 되도록 합니다.
const callerSkip = 3

// maxStackDepth 에러 하나에 기록하는 최대 프레임 수
const maxStackDepth = 5

// StackFrame 에러가 생성된 지점의 호출 정보입니다.
type StackFrame struct {
	File     string
	Line     int
	Function string
}

func captureStack(skip int) []StackFrame {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	stack := make([]StackFrame, 0, n)
	for {
		frame, more := frames.Next()
		stack = append(stack, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			break
		}
	}
	return stack
}
