package config

import (
	"fmt"
	"os"
	"strings"

	apperrors "github.com/darkkaiser/echo-gtm/internal/pkg/errors"
	"github.com/darkkaiser/echo-gtm/pkg/gtm"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "echo-gtm"

	// DefaultFilename 실행 인자로 경로가 주어지지 않을 때 읽는 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	// 예: ECHO_GTM_GTM__ID=GTM-ABC123 -> gtm.id
	EnvPrefix = "ECHO_GTM_"

	// DefaultListenPort 웹 서버 포트 기본값
	DefaultListenPort = 8080
)

// Default 설정 파일보다 우선순위가 낮은 기본 설정을 반환합니다.
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			ListenPort: DefaultListenPort,
			CORS: CORSConfig{
				AllowOrigins: []string{"*"},
			},
		},
		GTM: GTMConfig{
			Enabled:                true,
			LoadScript:             true,
			Source:                 gtm.DefaultSource,
			DataLayerName:          gtm.DefaultDataLayerName,
			ParentElement:          gtm.DefaultParentElement,
			TrackViews:             true,
			TrackViewEventProperty: gtm.DefaultTrackViewEventProperty,
		},
	}
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
//
// 우선순위: 기본값 < JSON 설정 파일 < 환경 변수(ECHO_GTM_)
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값
	if err := k.Load(structs.Provider(Default(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 (이중 언더스코어(__)가 계층 구분자)
	// 예: ECHO_GTM_SERVER__LISTEN_PORT -> server.listen_port
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링
	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				sourceDecodeHook(),
			),
			ErrorUnused:      true, // 구조체에 없는 필드가 있으면 에러
			WeaklyTypedInput: true,
			Result:           &appConfig,
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사
	if err := appConfig.validate(newValidator()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}
