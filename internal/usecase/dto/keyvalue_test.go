package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyValueMap(t *testing.T) {
	m := KeyValueMap([]KeyValue{{Key: "stack", Value: "go"}, {Key: "db", Value: "postgres"}, {Key: "stack", Value: "echo"}})
	assert.Equal(t, map[string]interface{}{"stack": "echo", "db": "postgres"}, m)
}

func TestMergeKeyValues(t *testing.T) {
	existing := map[string]interface{}{"stack": "go", "db": "postgres", "cache": "redis"}

	merged := MergeKeyValues(existing, []KeyValue{{Key: "db", Value: "sqlite"}, {Key: "queue", Value: "none"}}, []string{"cache", "missing"})

	assert.Equal(t, map[string]interface{}{"stack": "go", "db": "sqlite", "queue": "none"}, merged)
	assert.Equal(t, "postgres", existing["db"], "기존 맵은 변경되지 않아야 합니다")
}
