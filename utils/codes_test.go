package utils

import (
	"strings"
	"testing"
)

func TestGenerateOrderNumber(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateOrderNumber()
		if len(code) != 6 {
			t.Fatalf("expected 6 characters, got %q", code)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("unexpected character %q in order number %q", r, code)
			}
		}
	}
}

func TestGenerateShortCode(t *testing.T) {
	code := GenerateShortCode()
	if len(code) != 8 {
		t.Fatalf("expected 8 characters, got %q", code)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 4); got != "abcd" {
		t.Fatalf("expected abcd, got %s", got)
	}
	if got := Truncate("abc", 4); got != "abc" {
		t.Fatalf("expected abc, got %s", got)
	}
}

func TestTruncate_MultibyteSafe(t *testing.T) {
	got := Truncate("✈️🌻✈️🌻", 2)
	if got != "✈️" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
}
