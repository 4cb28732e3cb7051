// Package web echo-gtm 데모 웹 서버의 생명주기를 관리합니다.
//
// 페이지 라우트에는 GTM 스니펫이 삽입되고, /api/v1 아래에 ID 검증, 이벤트 전송,
// 추적 설정 API가 제공됩니다.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/darkkaiser/echo-gtm/internal/config"
	"github.com/darkkaiser/echo-gtm/internal/metrics"
	apperrors "github.com/darkkaiser/echo-gtm/internal/pkg/errors"
	"github.com/darkkaiser/echo-gtm/internal/pkg/version"
	"github.com/darkkaiser/echo-gtm/internal/service/contract"
	"github.com/darkkaiser/echo-gtm/internal/service/web/auth"
	"github.com/darkkaiser/echo-gtm/internal/service/web/constants"
	"github.com/darkkaiser/echo-gtm/internal/service/web/handler"
	"github.com/darkkaiser/echo-gtm/pkg/gtm"
	applog "github.com/darkkaiser/echo-gtm/pkg/log"
	"github.com/labstack/echo/v4"
)

var _ contract.Service = (*Service)(nil)

// Service 웹 서버의 생명주기를 관리하는 서비스입니다.
//
// Start로 시작하면 별도의 고루틴에서 HTTP 서버가 실행되며,
// 전달한 context가 취소되면 Graceful Shutdown 후 WaitGroup을 해제합니다.
type Service struct {
	appConfig *config.AppConfig

	recorder *metrics.Recorder

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다.
func NewService(appConfig *config.AppConfig, recorder *metrics.Recorder, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if recorder == nil {
		panic(constants.PanicMsgRecorderRequired)
	}

	return &Service{
		appConfig: appConfig,

		recorder: recorder,

		buildInfo: buildInfo,
	}
}

// Start 웹 서비스를 시작합니다.
//
// 서버 구성(GTM 옵션 검증 포함)은 호출한 고루틴에서 수행하므로 잘못된 설정은 에러로 즉시 반환됩니다.
// 에러를 반환하거나 이미 실행 중이면 serviceStopWG.Done()을 호출한 뒤 반환합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	e, err := s.setupServer()
	if err != nil {
		serviceStopWG.Done()
		return err
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG, e)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

// runServiceLoop HTTP 서버를 시작하고 종료 신호를 기다립니다.
func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, e *echo.Echo) {
	defer serviceStopWG.Done()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer echo 인스턴스를 만들고 GTM 플러그인과 라우트를 등록합니다.
func (s *Service) setupServer() (*echo.Echo, error) {
	e := NewHTTPServer(HTTPServerConfig{
		Debug:        s.appConfig.Debug,
		EnableHSTS:   s.appConfig.Server.TLSServer,
		AllowOrigins: s.appConfig.Server.CORS.AllowOrigins,
	})

	support, err := gtm.Install(e, s.gtmOptions())
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "GTM 플러그인을 등록할 수 없습니다")
	}

	support.SetViewMeta(constants.RouteNameHome, gtm.ViewMeta{Name: "Home"})
	support.SetViewMeta(constants.RouteNameAbout, gtm.ViewMeta{
		Name: "About",
		Data: gtm.Fields{"page-type": "static"},
	})
	s.recorder.SetTrackingEnabled(support.Enabled())

	authenticator := auth.NewAuthenticator(s.appConfig.Server.AdminKeys)
	if !authenticator.Configured() {
		applog.WithComponent(constants.ComponentService).Warn("관리 API 키가 없어 추적 설정 변경 API가 잠겨 있습니다")
	}

	SetupRoutes(e, handler.NewHandler(support, s.recorder, s.buildInfo), support, authenticator)

	return e, nil
}

// gtmOptions 설정 파일의 GTM 옵션에 지표 수집기와 시스템 라우트 제외 목록을 더합니다.
func (s *Service) gtmOptions() gtm.Options {
	opts := s.appConfig.GTM.Options()
	opts.Recorder = s.recorder
	opts.IgnoredViews = append(slices.Clone(opts.IgnoredViews), constants.UntrackedRouteNames...)
	return opts
}

// startHTTPServer HTTP/HTTPS 서버를 시작합니다. 서버가 종료될 때까지 블로킹됩니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	address := fmt.Sprintf(":%d", s.appConfig.Server.ListenPort)
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"address": address,
		"tls":     s.appConfig.Server.TLSServer,
	}).Debug(constants.LogMsgServiceHTTPServerStarting)

	var err error
	if s.appConfig.Server.TLSServer {
		err = e.StartTLS(address, s.appConfig.Server.TLSCertFile, s.appConfig.Server.TLSKeyFile)
	} else {
		err = e.Start(address)
	}

	s.handleServerError(err)
}

// handleServerError http.ErrServerClosed는 정상 종료로 보고, 그 외의 에러는 Error 레벨로 기록합니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.Server.ListenPort,
		"error": err,
	}).Error(constants.LogMsgServiceHTTPServerFatalError)
}

// waitForShutdown 종료 신호를 기다린 뒤 Graceful Shutdown을 수행합니다.
// 서버가 먼저 종료되었으면(포트 바인딩 실패 등) Shutdown 없이 상태만 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}

// Running 서비스가 실행 중인지 반환합니다.
func (s *Service) Running() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	return s.running
}
