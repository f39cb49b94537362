package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSanitizeLogMessage 测试日志消息清洗
func TestSanitizeLogMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "hello world", "hello world"},
		{"keeps newline and tab", "a\n\tb", "a\n\tb"},
		{"strips control characters", "a\x00b\x1bc", "abc"},
		{"strips carriage return", "a\rb", "ab"},
		{"unicode preserved", "相框 photo", "相框 photo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeLogMessage(tt.input))
		})
	}
}

// TestSanitizeLogUserID 测试用户标识截断
func TestSanitizeLogUserID(t *testing.T) {
	short := SanitizeLogUserID("108201234567890")
	assert.Equal(t, "108201234567890", short)

	long := SanitizeLogUserID(strings.Repeat("x", 80))
	assert.Equal(t, strings.Repeat("x", 50)+"...", long)

	injected := SanitizeLogUserID("user\rid")
	assert.Equal(t, "userid", injected)
}

// TestGenerateRandomToken 测试随机Token生成
func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Regexp(t, "^[A-Za-z0-9=_-]*$", token)

	other, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
