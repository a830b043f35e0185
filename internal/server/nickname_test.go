package server

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNickname(t *testing.T) {
	for range 10 {
		name := GenerateNickname()
		assert.NotEmpty(t, name)
		// 昵称格式为「名词 形容词」
		assert.True(t, strings.Contains(name, " "))
	}
}
