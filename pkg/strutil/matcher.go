package strutil

import (
	"fmt"
	"path"
	"strings"
)

// Matcher 와일드카드 패턴(*, ?, [a-z]) 목록 중 하나라도 일치하는지 검사합니다.
// 대소문자를 구분하지 않으며, 생성 이후에는 읽기 전용이므로 동시에 사용해도 안전합니다.
type Matcher struct {
	patterns []string
}

// NewMatcher 패턴 목록으로 Matcher를 생성합니다. 빈 패턴은 무시하고, 문법이 잘못된 패턴은 에러를 반환합니다.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{patterns: make([]string, 0, len(patterns))}

	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("잘못된 패턴입니다 ('%s'): %w", p, err)
		}
		m.patterns = append(m.patterns, p)
	}

	return m, nil
}

// Len 유효한 패턴 수를 반환합니다.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// Match s가 패턴 중 하나와 일치하면 true를 반환합니다.
func (m *Matcher) Match(s string) bool {
	s = strings.ToLower(s)
	for _, p := range m.patterns {
		if ok, _ := path.Match(p, s); ok {
			return true
		}
	}
	return false
}
