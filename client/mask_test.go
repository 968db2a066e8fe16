package client

import "testing"

func TestMaskAPIKey(t *testing.T) {
	cases := map[string]string{
		"":                   "",
		"abc":                "***",
		"12345678":           "********",
		"123456789":          "1234...6789",
		"sk_test_1234567890": "sk_t...7890",
		"ключ-ключ-ключ":     "ключ...ключ",
	}
	for in, want := range cases {
		if got := MaskAPIKey(in); got != want {
			t.Errorf("MaskAPIKey(%q) = %q, want %q", in, got, want)
		}
	}
}
