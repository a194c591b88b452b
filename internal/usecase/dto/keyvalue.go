package dto

// KeyValue 키/값 입력 항목
type KeyValue struct {
	Key   string      `json:"key" validate:"required"`
	Value interface{} `json:"value"`
}

// KeyValueMap 키/값 목록을 맵으로 변환합니다. 같은 키는 나중 값이 우선합니다.
func KeyValueMap(items []KeyValue) map[string]interface{} {
	out := make(map[string]interface{}, len(items))
	for _, item := range items {
		out[item.Key] = item.Value
	}
	return out
}

// MergeKeyValues 기존 맵을 복사한 뒤 새 키를 설정하고 remove의 키를 제거합니다.
// 존재하지 않는 키 제거는 무시합니다.
func MergeKeyValues(existing map[string]interface{}, items []KeyValue, remove []string) map[string]interface{} {
	out := make(map[string]interface{}, len(existing)+len(items))
	for k, v := range existing {
		out[k] = v
	}
	for _, item := range items {
		out[item.Key] = item.Value
	}
	for _, key := range remove {
		delete(out, key)
	}
	return out
}
