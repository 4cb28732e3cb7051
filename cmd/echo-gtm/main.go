package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/echo-gtm/internal/config"
	"github.com/darkkaiser/echo-gtm/internal/metrics"
	"github.com/darkkaiser/echo-gtm/internal/pkg/version"
	"github.com/darkkaiser/echo-gtm/internal/service/contract"
	"github.com/darkkaiser/echo-gtm/internal/service/web"
	"github.com/darkkaiser/echo-gtm/pkg/gtm"
	applog "github.com/darkkaiser/echo-gtm/pkg/log"
)

const (
	banner = `
           _                        _
  ___  ___| |__   ___         __ _| |_ _ __ ___
 / _ \/ __| '_ \ / _ \ _____ / _' | __| '_ ' _ \
|  __/ (__| | | | (_) |_____| (_| | |_| | | | | |
 \___|\___|_| |_|\___/       \__, |\__|_| |_| |_|
                             |___/   %s
--------------------------------------------------------------------------------
`
)

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := loadConfig(os.Args[1:])
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintln(os.Stderr, startupErrorMessage(err))
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	logOpts := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields("main", applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(warning)
	}

	// 3. 서비스 시작
	services := []contract.Service{
		web.NewService(appConfig, metrics.New(), buildInfo),
	}

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 먼저 시작된 서비스도 종료
			serviceStopWG.Wait()

			fmt.Fprintln(os.Stderr, startupErrorMessage(err))
			appLogCloser.Close()
			os.Exit(1)
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC

	applog.WithComponent("main").Info("Shutdown signal received")
	cancel()
	serviceStopWG.Wait()
}

// loadConfig 첫 번째 인자가 있으면 해당 경로의 설정 파일을, 없으면 기본 설정 파일을 읽습니다.
func loadConfig(args []string) (*config.AppConfig, error) {
	if len(args) > 0 && args[0] != "" {
		return config.LoadWithFile(args[0])
	}
	return config.Load()
}

// startupErrorMessage 시작 실패 원인을 출력할 메시지로 변환합니다.
// 잘못된 GTM-ID는 교정 제안이 포함된 원래 메시지를 그대로 보여줍니다.
func startupErrorMessage(err error) string {
	var cfgErr *gtm.ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.Error()
	}
	return fmt.Sprintf("[FATAL] 환경설정 로드 실패: %v", err)
}
