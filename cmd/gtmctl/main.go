// gtmctl echo-gtm 설정과 컨테이너 ID를 다루는 명령행 도구입니다.
//
//	gtmctl validate GTM-ABC123 '{"id": "G-XYZ", "query_params": {"gtm_auth": "x"}}'
//	gtmctl snippet --id GTM-ABC123 --defer --param gtm_preview=env-4
//	gtmctl config --file echo-gtm.json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
