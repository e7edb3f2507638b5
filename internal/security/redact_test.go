package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactEnv(t *testing.T) {
	in := map[string]string{
		"GITHUB_TOKEN":      "ghp_x",
		"DB_PASSWORD":       "hunter2",
		"AWS_ACCESS_KEY_ID": "AKIA",
		"PWD":               "/home/me",
		"LANG":              "C.UTF-8",
	}
	got := RedactEnv(in)

	assert.Equal(t, map[string]string{
		"GITHUB_TOKEN":      Mask,
		"DB_PASSWORD":       Mask,
		"AWS_ACCESS_KEY_ID": Mask,
		"PWD":               "/home/me",
		"LANG":              "C.UTF-8",
	}, got)
	assert.Equal(t, "ghp_x", in["GITHUB_TOKEN"], "input must not be modified")
}

func TestRedactEnv_Nil(t *testing.T) {
	assert.Nil(t, RedactEnv(nil))
}

func TestIsSensitiveKey(t *testing.T) {
	assert.True(t, IsSensitiveKey(" Session_ID "))
	assert.True(t, IsSensitiveKey("client_secret"))
	assert.False(t, IsSensitiveKey("OLDPWD"))
	assert.False(t, IsSensitiveKey("TEST_VAR"))
}
