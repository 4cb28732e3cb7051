package gtm

import (
	"fmt"
	"maps"
)

// QueryParams 스크립트 URL에 덧붙일 쿼리 파라미터입니다. (gtm_auth, gtm_preview, gtm_cookies_win 등)
type QueryParams map[string]string

// Container 로드할 GTM 컨테이너 하나를 나타냅니다.
type Container struct {
	ID          string      `json:"id" yaml:"id"`
	QueryParams QueryParams `json:"query_params,omitempty" yaml:"query_params,omitempty"`
}

// Source 컨테이너 설정의 세 가지 형태(ID 문자열, Container 레코드, 이 둘을 섞은 목록)를 표현하는 합 타입입니다.
//
// ID, IDs, Record, Sources 함수로만 생성할 수 있으며, Normalize로 순서가 보존된 []Container로 변환됩니다.
type Source interface {
	appendContainers(dst []Container) []Container
}

type idSource string

func (s idSource) appendContainers(dst []Container) []Container {
	return append(dst, Container{ID: string(s)})
}

type recordSource Container

func (s recordSource) appendContainers(dst []Container) []Container {
	c := Container(s)
	c.QueryParams = maps.Clone(c.QueryParams)
	return append(dst, c)
}

type listSource []Source

func (s listSource) appendContainers(dst []Container) []Container {
	for _, item := range s {
		if item != nil {
			dst = item.appendContainers(dst)
		}
	}
	return dst
}

// ID 단일 컨테이너 ID 형태의 Source를 만듭니다.
func ID(id string) Source {
	return idSource(id)
}

// IDs 여러 컨테이너 ID를 순서대로 담은 Source를 만듭니다.
func IDs(ids ...string) Source {
	list := make(listSource, 0, len(ids))
	for _, id := range ids {
		list = append(list, idSource(id))
	}
	return list
}

// Record 쿼리 파라미터를 포함한 컨테이너 레코드 형태의 Source를 만듭니다.
func Record(c Container) Source {
	return recordSource(c)
}

// Sources 여러 Source를 순서대로 묶습니다. 중첩된 목록은 평탄화됩니다.
func Sources(items ...Source) Source {
	return listSource(items)
}

// Normalize Source를 순서가 보존된 컨테이너 목록으로 변환합니다. 검증은 하지 않습니다.
func Normalize(src Source) []Container {
	if src == nil {
		return nil
	}
	return src.appendContainers(nil)
}

// Validate Source를 정규화하고 모든 컨테이너 ID를 검증합니다.
//
// 첫 번째로 발견된 잘못된 ID에 대해 *ConfigurationError를 반환하며, 이후 항목은 검사하지 않습니다.
// 컨테이너가 하나도 없으면 빈 ID에 대한 ConfigurationError를 반환합니다.
func Validate(src Source) ([]Container, error) {
	containers := Normalize(src)
	if len(containers) == 0 {
		return nil, &ConfigurationError{}
	}

	for _, c := range containers {
		if err := ValidateID(c.ID); err != nil {
			return nil, err
		}
	}

	return containers, nil
}

// ParseSource JSON/YAML/환경설정에서 디코딩된 값을 Source로 변환합니다.
//
// 허용되는 값:
//   - string                           → ID
//   - map{"id": string, "query_params"} → Record (키 "queryParams"도 허용)
//   - Container, *Container            → Record
//   - []any, []string, []map[string]any → 각 항목을 재귀적으로 변환한 목록
//   - Source                           → 그대로 반환
func ParseSource(v any) (Source, error) {
	switch val := v.(type) {
	case Source:
		return val, nil
	case string:
		return idSource(val), nil
	case Container:
		return recordSource(val), nil
	case *Container:
		if val == nil {
			return nil, fmt.Errorf("gtm: 컨테이너 레코드가 nil입니다")
		}
		return recordSource(*val), nil
	case map[string]any:
		return parseRecord(val)
	case []string:
		return IDs(val...), nil
	case []map[string]any:
		list := make(listSource, 0, len(val))
		for _, m := range val {
			r, err := parseRecord(m)
			if err != nil {
				return nil, err
			}
			list = append(list, r)
		}
		return list, nil
	case []any:
		list := make(listSource, 0, len(val))
		for i, item := range val {
			src, err := ParseSource(item)
			if err != nil {
				return nil, fmt.Errorf("gtm: 컨테이너 목록의 %d번째 항목: %w", i, err)
			}
			list = append(list, src)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("gtm: 지원하지 않는 컨테이너 설정 형식입니다 (%T)", v)
	}
}

func parseRecord(m map[string]any) (Source, error) {
	rawID, ok := m["id"]
	if !ok {
		return nil, fmt.Errorf("gtm: 컨테이너 레코드에 id가 없습니다")
	}
	id, ok := rawID.(string)
	if !ok {
		return nil, fmt.Errorf("gtm: 컨테이너 레코드의 id는 문자열이어야 합니다 (%T)", rawID)
	}

	c := Container{ID: id}

	rawParams, ok := m["query_params"]
	if !ok {
		rawParams, ok = m["queryParams"]
	}
	if ok && rawParams != nil {
		params, err := parseQueryParams(rawParams)
		if err != nil {
			return nil, fmt.Errorf("gtm: 컨테이너 '%s'의 query_params: %w", id, err)
		}
		c.QueryParams = params
	}

	return recordSource(c), nil
}

func parseQueryParams(v any) (QueryParams, error) {
	switch val := v.(type) {
	case QueryParams:
		return maps.Clone(val), nil
	case map[string]string:
		return QueryParams(maps.Clone(val)), nil
	case map[string]any:
		params := make(QueryParams, len(val))
		for k, raw := range val {
			params[k] = fmt.Sprint(raw)
		}
		return params, nil
	default:
		return nil, fmt.Errorf("지원하지 않는 형식입니다 (%T)", v)
	}
}
