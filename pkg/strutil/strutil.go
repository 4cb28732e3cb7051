// Package strutil 설정 값 처리에 쓰이는 문자열 유틸리티입니다.
package strutil

import "strings"

// SplitAndTrim 구분자로 문자열을 나눈 뒤 각 항목의 앞뒤 공백을 제거하고 빈 항목을 버립니다.
// 남는 항목이 없으면 nil을 반환합니다.
//
//	SplitAndTrim("a, , b,c", ",") -> ["a", "b", "c"]
func SplitAndTrim(s, sep string) []string {
	var result []string
	for _, token := range strings.Split(s, sep) {
		if token = strings.TrimSpace(token); token != "" {
			result = append(result, token)
		}
	}
	return result
}
