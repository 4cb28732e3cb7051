// Package handler 웹 서비스의 페이지, GTM API, 시스템 엔드포인트 핸들러를 제공합니다.
package handler

import (
	"time"

	"github.com/darkkaiser/echo-gtm/internal/metrics"
	"github.com/darkkaiser/echo-gtm/internal/pkg/version"
	"github.com/darkkaiser/echo-gtm/internal/service/web/constants"
	"github.com/darkkaiser/echo-gtm/pkg/gtm"
)

// Handler 모든 엔드포인트 핸들러가 공유하는 의존성입니다.
type Handler struct {
	support  *gtm.Support
	recorder *metrics.Recorder

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다. support와 recorder는 필수입니다.
func NewHandler(support *gtm.Support, recorder *metrics.Recorder, buildInfo version.Info) *Handler {
	if support == nil {
		panic(constants.PanicMsgSupportRequired)
	}
	if recorder == nil {
		panic(constants.PanicMsgRecorderRequired)
	}

	return &Handler{
		support:  support,
		recorder: recorder,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}
