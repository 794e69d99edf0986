package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	valid := map[string]Role{
		"":        RoleUser,
		"user":    RoleUser,
		"trainer": RoleTrainer,
	}
	for in, want := range valid {
		got, err := ParseRole(in)
		if err != nil || got != want {
			t.Errorf("ParseRole(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	for _, in := range []string{" trainer ", "trainer\n", "Trainer", "USER", "admin", " "} {
		if _, err := ParseRole(in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseRole(%q) error = %v, want ErrInvalidInput", in, err)
		}
	}
}
