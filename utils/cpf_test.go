package utils

import "testing"

func TestMaskCPF_FormattedInput(t *testing.T) {
	got := MaskCPF("123.456.789-01")
	if got != "123.***.***-01" {
		t.Fatalf("expected masked CPF, got %s", got)
	}
}

func TestMaskCPF_DigitsOnly(t *testing.T) {
	got := MaskCPF("12345678901")
	if got != "123.***.***-01" {
		t.Fatalf("expected masked CPF, got %s", got)
	}
}

func TestMaskCPF_ShortInputUntouched(t *testing.T) {
	got := MaskCPF("1234567890")
	if got != "1234567890" {
		t.Fatalf("expected short input unchanged, got %s", got)
	}
}

func TestMaskCPF_AlreadyMaskedStaysMasked(t *testing.T) {
	// A pre-masked CPF has only 5 digits, so masking is a no-op.
	got := MaskCPF("123.***.***-01")
	if got != "123.***.***-01" {
		t.Fatalf("expected masked input unchanged, got %s", got)
	}
}

func TestIsMaskedCPF(t *testing.T) {
	if !IsMaskedCPF("123.***.***-01") {
		t.Fatal("expected masked pattern to match")
	}
	if IsMaskedCPF("123.456.789-01") {
		t.Fatal("raw CPF must not match the masked pattern")
	}
	if IsMaskedCPF("12345678901") {
		t.Fatal("digit string must not match the masked pattern")
	}
	if IsMaskedCPF("") {
		t.Fatal("empty string must not match")
	}
}

func TestMaskCPF_OutputMatchesStoredPattern(t *testing.T) {
	for _, in := range []string{"98765432109", "987.654.321-09", "  987 654 321 09 "} {
		if got := MaskCPF(in); !IsMaskedCPF(got) {
			t.Fatalf("MaskCPF(%q) = %q, not in stored pattern", in, got)
		}
	}
}
