package handler

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator 요청 본문 검증기를 반환합니다. 에러 메시지의 필드 이름은 korean 태그를 우선합니다.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("korean"); name != "" {
				return name
			}
			return fld.Name
		})
	})

	return validate
}

// ValidateRequest 구조체의 validate 태그를 기반으로 검증을 수행합니다.
//
// 필드 이름은 korean 태그를 우선 사용하므로, 에러를 FormatValidationError로 변환하면
// 사용자에게 보여줄 한글 메시지가 됩니다.
//
// Parameters:
//   - req: 검증할 요청 구조체의 포인터 (예: *model.TrackingRequest)
//
// Returns:
//   - nil: 모든 필드가 유효한 경우
//   - validator.ValidationErrors: 검증 실패 시 (FormatValidationError는 첫 번째 에러만 사용)
//
// 사용 예시:
//
//	var req model.ValidateIDsRequest
//	if err := c.Bind(&req); err != nil {
//	    return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
//	}
//	if err := ValidateRequest(&req); err != nil {
//	    return httputil.NewBadRequestError(FormatValidationError(err))
//	}
func ValidateRequest(req any) error {
	return getValidator().Struct(req)
}

// FormatValidationError validator 에러를 사용자 친화적인 한글 메시지로 변환합니다.
// 여러 검증 에러가 있을 경우 첫 번째 에러만 사용하며, validator 에러가 아니면 err.Error()를 그대로 반환합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	return formatFieldError(validationErrors[0])
}

func formatFieldError(fieldErr validator.FieldError) string {
	fieldName := fieldErr.Field()

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s는 필수입니다", fieldName)
	case "required_without":
		return fmt.Sprintf("%s 또는 %s 중 하나는 필수입니다", fieldName, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s는 최대 %s까지 입력 가능합니다", fieldName, fieldErr.Param())
	default:
		return fmt.Sprintf("%s 검증 실패: %s", fieldName, fieldErr.Tag())
	}
}
