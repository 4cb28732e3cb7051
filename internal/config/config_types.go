package config

import (
	"fmt"
	"strings"

	apperrors "github.com/darkkaiser/echo-gtm/internal/pkg/errors"
	"github.com/darkkaiser/echo-gtm/pkg/gtm"
	"github.com/darkkaiser/echo-gtm/pkg/strutil"
	"github.com/go-playground/validator/v10"
)

// AppConfig 애플리케이션의 모든 설정을 포함하는 최상위 구조체
type AppConfig struct {
	Debug  bool         `json:"debug"`
	Server ServerConfig `json:"server"`
	GTM    GTMConfig    `json:"gtm"`
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if err := c.Server.validate(v); err != nil {
		return err
	}

	if err := c.GTM.validate(v); err != nil {
		return err
	}

	return nil
}

// VerifyRecommendations 권장 설정 준수 여부를 진단합니다.
// 에러를 발생시키지는 않으며, 잠재적 위험 요소에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	warnings := c.Server.VerifyRecommendations()

	if c.GTM.Debug && !c.Debug {
		warnings = append(warnings, "운영 모드에서 GTM 디버그 로그(gtm.debug)가 활성화되어 있습니다. 모든 이벤트 전송이 로그로 기록됩니다")
	}
	if !c.GTM.Enabled {
		warnings = append(warnings, "GTM 추적이 비활성화(gtm.enabled=false)된 상태로 시작합니다. PUT /api/v1/tracking으로 활성화할 수 있습니다")
	}

	return warnings
}

// ServerConfig 웹 서버의 포트 및 TLS(HTTPS) 보안 설정을 정의하는 구조체
type ServerConfig struct {
	ListenPort  int        `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer   bool       `json:"tls_server"`
	TLSCertFile string     `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string     `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	CORS        CORSConfig `json:"cors"`

	// AdminKeys 추적 설정 변경 등 관리 API 호출에 필요한 X-App-Key 값 목록입니다.
	// 비어있으면 관리 API는 모든 요청을 거부합니다.
	AdminKeys []string `json:"admin_keys" validate:"dive,min=16"`
}

func (c *ServerConfig) validate(v *validator.Validate) error {
	if err := v.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			fieldErr := validationErrors[0]
			// 슬라이스 원소의 에러는 "AllowOrigins[0]" 형태로 보고된다.
			switch field, _, _ := strings.Cut(fieldErr.StructField(), "["); field {
			case "ListenPort":
				return apperrors.New(apperrors.InvalidInput, "웹 서버 포트(listen_port)는 1에서 65535 사이의 값이어야 합니다")
			case "TLSCertFile", "TLSKeyFile":
				if fieldErr.Tag() == "required_if" {
					return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("TLS 서버 활성화 시 %s는 필수입니다", fieldErr.Field()))
				}
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 파일(%s)을 찾을 수 없습니다: '%v'", fieldErr.Field(), fieldErr.Value()))
			case "AllowOrigins":
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", fieldErr.Value()))
			case "AdminKeys":
				return apperrors.New(apperrors.InvalidInput, "관리 API 키(admin_keys)는 16자 이상이어야 합니다")
			}
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "웹 서버 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}

	return c.CORS.validate()
}

func (c *ServerConfig) VerifyRecommendations() []string {
	var warnings []string

	// 시스템 예약 포트(1024 미만) 사용 경고
	if c.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.ListenPort))
	}

	if len(c.AdminKeys) == 0 {
		warnings = append(warnings, "관리 API 키(server.admin_keys)가 설정되지 않았습니다. PUT /api/v1/tracking 요청은 모두 거부됩니다")
	}

	return warnings
}

// CORSConfig 웹 브라우저의 교차 출처 리소스 공유(CORS) 정책을 설정하는 구조체
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"dive,cors_origin"`
}

func (c *CORSConfig) validate() error {
	if len(c.AllowOrigins) == 0 {
		return apperrors.New(apperrors.InvalidInput, "CORS 허용 도메인(allow_origins) 목록이 비어있습니다")
	}

	for _, origin := range c.AllowOrigins {
		if origin == "*" && len(c.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
		}
	}

	return nil
}

// GTMConfig gtm.Options를 설정 파일로 표현한 구조체
//
// id는 문자열, {"id", "query_params"} 객체, 또는 이 둘을 섞은 배열로 지정할 수 있습니다.
// 환경 변수로 지정할 때는 쉼표로 여러 개를 구분합니다. (ECHO_GTM_GTM__ID=GTM-A,GTM-B)
type GTMConfig struct {
	ID                     gtm.Source        `json:"id"`
	QueryParams            map[string]string `json:"query_params"`
	Defer                  bool              `json:"defer"`
	Compatibility          bool              `json:"compatibility"`
	Nonce                  string            `json:"nonce" validate:"omitempty,printascii"`
	Enabled                bool              `json:"enabled"`
	Debug                  bool              `json:"debug"`
	LoadScript             bool              `json:"load_script"`
	Source                 string            `json:"source" validate:"required,http_url"`
	DataLayerName          string            `json:"data_layer_name" validate:"required"`
	ParentElement          string            `json:"parent_element" validate:"required"`
	TrackViews             bool              `json:"track_views"`
	IgnoredViews           []string          `json:"ignored_views" validate:"dive,required"`
	IgnoredViewPatterns    []string          `json:"ignored_view_patterns" validate:"dive,required"`
	TrackViewEventProperty string            `json:"track_view_event_property" validate:"required"`
}

func (c *GTMConfig) validate(v *validator.Validate) error {
	// 컨테이너 ID 검증을 가장 먼저 수행한다. (ConfigurationError 메시지를 그대로 보존)
	if _, err := gtm.Validate(c.ID); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, "GTM 컨테이너 ID(gtm.id) 설정이 올바르지 않습니다")
	}

	if err := checkStruct(v, c, "GTM"); err != nil {
		return err
	}

	if _, err := strutil.NewMatcher(c.IgnoredViewPatterns); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, "추적 제외 화면 패턴(gtm.ignored_view_patterns) 설정이 올바르지 않습니다")
	}

	if _, err := gtm.New(c.Options()); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, "GTM 옵션 설정이 올바르지 않습니다")
	}

	return nil
}

// Options 설정 값으로 gtm.Options를 만듭니다.
//
// ignored_view_patterns는 대소문자를 구분하지 않는 와일드카드 검사 함수(IgnoreView)로 옮겨집니다.
// 문법이 잘못된 패턴이 있으면 IgnoreView는 설정되지 않습니다. (validate에서 먼저 걸러진다)
func (c *GTMConfig) Options() gtm.Options {
	opts := gtm.Options{
		ID:                     c.ID,
		QueryParams:            gtm.QueryParams(c.QueryParams),
		Defer:                  c.Defer,
		Compatibility:          c.Compatibility,
		Nonce:                  c.Nonce,
		Enabled:                gtm.Bool(c.Enabled),
		Debug:                  c.Debug,
		LoadScript:             gtm.Bool(c.LoadScript),
		Source:                 c.Source,
		DataLayerName:          c.DataLayerName,
		ParentElement:          c.ParentElement,
		TrackViews:             c.TrackViews,
		IgnoredViews:           c.IgnoredViews,
		TrackViewEventProperty: c.TrackViewEventProperty,
	}

	if m, err := strutil.NewMatcher(c.IgnoredViewPatterns); err == nil && m.Len() > 0 {
		opts.IgnoreView = m.Match
	}

	return opts
}

// Containers 정규화된 컨테이너 목록을 반환합니다. 검증은 하지 않습니다.
func (c *GTMConfig) Containers() []gtm.Container {
	return gtm.Normalize(c.ID)
}
