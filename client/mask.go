package client

import "strings"

const (
	maskKeep        = 4
	maskSeparator   = "..."
	maskPlaceholder = "*"

	// NotSetMask is the preview shown when no API key is configured.
	NotSetMask = "NOT SET"
)

// MaskAPIKey hides the middle of key, keeping the first and last four
// characters. Keys of eight characters or fewer are masked entirely.
func MaskAPIKey(key string) string {
	r := []rune(key)
	if len(r) <= 2*maskKeep {
		return strings.Repeat(maskPlaceholder, len(r))
	}
	return string(r[:maskKeep]) + maskSeparator + string(r[len(r)-maskKeep:])
}
