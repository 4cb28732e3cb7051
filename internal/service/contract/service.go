// Package contract 서버 main과 각 서비스 사이의 계약을 정의합니다.
package contract

import (
	"context"
	"sync"
)

// Service 시작과 종료를 main이 관리하는 서비스입니다.
type Service interface {
	// Start 서비스를 시작합니다. serviceStopWG는 호출 전에 Add(1) 되어 있어야 하며,
	// 서비스가 완전히 종료되거나 시작에 실패하면 Done()이 호출됩니다.
	// serviceStopCtx가 취소되면 서비스는 정상 종료 절차를 밟습니다.
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
