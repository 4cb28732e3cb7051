package gtm

import (
	"encoding/json"
	"maps"
	"sync"
)

// Fields 데이터 레이어에 push되는 항목 하나입니다.
type Fields map[string]any

// DataLayer 요청 하나 동안 쌓인 데이터 레이어 항목입니다.
//
// 렌더링 시 window.dataLayer.push(...)로 순서대로 출력됩니다.
// 여러 고루틴에서 동시에 사용할 수 있습니다.
type DataLayer struct {
	mu      sync.Mutex
	entries []Fields
}

// NewDataLayer 빈 데이터 레이어를 만듭니다.
func NewDataLayer() *DataLayer {
	return &DataLayer{}
}

// Push 항목을 복사해 추가합니다.
func (d *DataLayer) Push(f Fields) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries = append(d.entries, maps.Clone(f))
}

// Len 쌓인 항목 수를 반환합니다.
func (d *DataLayer) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.entries)
}

// Entries 쌓인 항목의 복사본을 반환합니다.
func (d *DataLayer) Entries() []Fields {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Fields, len(d.entries))
	for i, e := range d.entries {
		out[i] = maps.Clone(e)
	}
	return out
}

// MarshalJSON 항목을 JSON 배열로 직렬화합니다.
func (d *DataLayer) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Entries())
}
