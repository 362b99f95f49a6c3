package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Maria", "maria"},
		{"João P.", "joao-p"},
		{"  Ana Luíza ", "ana-luiza"},
		{"Viagens 2024", "viagens-2024"},
		{"---", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Fatalf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
