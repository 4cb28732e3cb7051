package config

import (
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/darkkaiser/echo-gtm/internal/pkg/errors"
	"github.com/darkkaiser/echo-gtm/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// newValidator 새로운 Validator 인스턴스를 생성하고 커스텀 유효성 검사 함수를 등록합니다.
//
// 등록되는 커스텀 태그:
//   - cors_origin: Scheme://Host[:Port] 형식의 CORS Origin 또는 와일드카드(*)
//   - http_url: http/https 스킴과 호스트를 가진 절대 URL (gtm.source)
//
// 커스텀 함수 등록에 실패하면 설정 로드를 진행할 수 없으므로 패닉이 발생합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 Go 구조체 필드명 대신 JSON 이름(예: listen_port)을 사용한다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("cors_origin", validateCORSOrigin); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cors_origin' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}
	if err := v.RegisterValidation("http_url", validateHTTPURL); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'http_url' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

// validateCORSOrigin validator 라이브러리의 검증 인터페이스를 도메인 로직과 연결하는 어댑터입니다.
//
// 설정 파일에 정의된 CORS Origin 문자열을 추출한 뒤, 실제 검증은 validation.ValidateCORSOrigin에 위임합니다.
func validateCORSOrigin(fl validator.FieldLevel) bool {
	return validation.ValidateCORSOrigin(fl.Field().String()) == nil
}

// validateHTTPURL 실제 검증은 validation.ValidateHTTPURL에 위임합니다.
func validateHTTPURL(fl validator.FieldLevel) bool {
	return validation.ValidateHTTPURL(fl.Field().String()) == nil
}

// checkStruct 구조체의 유효성을 검사하고, 첫 번째 에러를 사용자 친화적인 메시지로 반환합니다.
//
// Parameters:
//   - v: newValidator로 생성한 검증기
//   - s: 검증할 구조체 (포인터 또는 값)
//   - contextName: 에러 메시지에 표시할 설정 영역 이름 (예: "GTM")
//
// Returns:
//   - apperrors.InvalidInput 타입의 에러 (검증 실패 시), 성공 시 nil
func checkStruct(v *validator.Validate, s any, contextName string) error {
	if err := v.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			firstErr := validationErrors[0]
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 설정이 올바르지 않습니다: %s='%v' (조건: %s)", contextName, firstErr.Field(), firstErr.Value(), firstErr.Tag()))
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", contextName))
	}
	return nil
}
