package config

import (
	"reflect"
	"strings"

	"github.com/darkkaiser/echo-gtm/pkg/gtm"
	"github.com/darkkaiser/echo-gtm/pkg/strutil"
	"github.com/go-viper/mapstructure/v2"
)

var sourceType = reflect.TypeOf((*gtm.Source)(nil)).Elem()

// sourceDecodeHook gtm.id 값(문자열, 객체, 배열)을 gtm.Source로 변환하는 디코드 훅입니다.
//
// 환경 변수에서 온 문자열은 쉼표로 구분된 여러 ID일 수 있습니다.
func sourceDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != sourceType {
			return data, nil
		}

		if s, ok := data.(string); ok && strings.Contains(s, ",") {
			return gtm.IDs(strutil.SplitAndTrim(s, ",")...), nil
		}

		return gtm.ParseSource(data)
	}
}
