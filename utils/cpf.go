package utils

import "strings"

// MaskCPF reduces a CPF to its first three and last two digits:
// "123.456.789-01" -> "123.***.***-01". Inputs with fewer than 11 digits are
// returned untouched. Payments always store the masked form, never the raw
// document.
func MaskCPF(cpf string) string {
	var digits strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 11 {
		return cpf
	}
	return d[0:3] + ".***.***-" + d[9:11]
}

// IsMaskedCPF reports whether s already has the stored mask shape
// ddd.***.***-dd.
func IsMaskedCPF(s string) bool {
	if len(s) != 14 {
		return false
	}
	for i, r := range s {
		switch i {
		case 0, 1, 2, 12, 13:
			if r < '0' || r > '9' {
				return false
			}
		case 3, 7:
			if r != '.' {
				return false
			}
		case 11:
			if r != '-' {
				return false
			}
		default:
			if r != '*' {
				return false
			}
		}
	}
	return true
}
