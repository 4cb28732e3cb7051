// Package gtm Google Tag Manager 스니펫을 echo 애플리케이션에 등록하는 플러그인입니다.
//
// 구성 요소:
//   - 컨테이너 ID 검증: GTM-XXXX 또는 G-XXXX 형식만 허용하며, 잘못된 ID에는 교정 제안이 담긴
//     ConfigurationError를 반환합니다. 첫 번째 잘못된 ID에서 즉시 중단합니다.
//   - Support: 애플리케이션당 하나인 핸들입니다. 추적 활성화/디버그 상태를 가지며
//     TrackView / TrackEvent로 요청별 DataLayer에 이벤트를 쌓습니다.
//   - 스니펫: DataLayer와 컨테이너 목록으로 <script>/<noscript> 태그를 렌더링합니다.
//   - Injector: HTML 응답을 파싱해 스니펫을 지정한 요소(ParentElement)에 삽입합니다.
//   - ViewTracker: 라우트 이름을 화면 이름으로 삼아 페이지뷰를 자동으로 기록합니다.
//
// 사용 예시:
//
//	e := echo.New()
//	support, err := gtm.Install(e, gtm.Options{ID: gtm.IDs("GTM-ABC123")})
//	if err != nil {
//	    return err // *gtm.ConfigurationError
//	}
//
//	e.GET("/", func(c echo.Context) error {
//	    s, ok := gtm.FromContext(c) // Install 전이면 (nil, false)
//	    ...
//	})
package gtm
