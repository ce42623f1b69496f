package mealmind_test

import (
	"bytes"
	"testing"

	"mealmind"

	"github.com/stretchr/testify/assert"
)

func TestDumpTo(t *testing.T) {
	var buf bytes.Buffer
	mealmind.DumpTo(&buf, mealmind.RequestLog{Action: "suggest_meal", Tier: "fallback"})

	out := buf.String()
	assert.Contains(t, out, "dump_test.go:14:")
	assert.Contains(t, out, "suggest_meal")
	assert.Contains(t, out, "fallback")
}
