package validation

import (
	"strings"
	"testing"
)

func TestValidSubdomain(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"demo", true},
		{"acme", true},
		{"my-team-2", true},
		{"abc", true},
		{"a2c", true},
		{"ab", false},          // muy corto
		{"-lead", false},       // guión inicial
		{"trail-", false},      // guión final
		{"Demo", false},        // mayúsculas
		{"with space", false},
		{"", false},
		{"a........b", false},
		{strings.Repeat("a", 64), false}, // 64 > límite DNS
	}
	for _, c := range cases {
		if got := ValidSubdomain(c.in); got != c.want {
			t.Errorf("ValidSubdomain(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "admin@demo.com", "x.y+z@sub.example.org"}
	invalid := []string{"", "no-arroba", "@x.com", "a@b", "a b@c.com", "a@b c.com"}
	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = true, want false", e)
		}
	}
}

func TestValidPassword(t *testing.T) {
	if ValidPassword("corto") {
		t.Error("password de 5 chars no debe pasar")
	}
	if !ValidPassword("12345678") {
		t.Error("8 chars es el mínimo")
	}
	if ValidPassword(strings.Repeat("x", 129)) {
		t.Error("129 chars excede el máximo")
	}
}
