package log

const callerPathPrefix = "github.com/darkkaiser/echo-gtm"

// NewProductionOptions 운영 환경용 로그 옵션을 반환합니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:              appName,
		Level:             InfoLevel,
		MaxAge:            30,
		EnableCriticalLog: true,
		EnableVerboseLog:  true,
		ReportCaller:      true,
		CallerPathPrefix:  callerPathPrefix,
	}
}

// NewDevelopmentOptions 개발 환경용 로그 옵션을 반환합니다. 콘솔 출력이 켜집니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:             appName,
		Level:            TraceLevel,
		MaxAge:           1,
		MaxSizeMB:        50,
		MaxBackups:       5,
		EnableConsoleLog: true,
		ReportCaller:     true,
		CallerPathPrefix: callerPathPrefix,
	}
}
