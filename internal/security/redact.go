package security

import "strings"

// Mask replaces redacted values.
const Mask = "***"

var sensitiveSubstrings = []string{
	"token",
	"password",
	"passwd",
	"pwd",
	"passphrase",
	"secret",
	"authorization",
	"auth",
	"apikey",
	"api_key",
	"access_key",
	"private_key",
	"credential",
	"cookie",
	"session",
	"jwt",
	"bearer",
	"signature",
	"key",
}

// Variables that match a sensitive substring but never hold secrets.
var allowList = map[string]struct{}{
	"pwd":    {},
	"oldpwd": {},
	"keymap": {},
}

// RedactEnv returns a copy of environment overrides with sensitive values masked.
func RedactEnv(values map[string]string) map[string]string {
	if values == nil {
		return nil
	}
	redacted := make(map[string]string, len(values))
	for key, value := range values {
		if IsSensitiveKey(key) {
			redacted[key] = Mask
			continue
		}
		redacted[key] = value
	}
	return redacted
}

// IsSensitiveKey reports whether an environment variable name looks like it holds a secret.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	if _, ok := allowList[lower]; ok {
		return false
	}
	for _, part := range sensitiveSubstrings {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
