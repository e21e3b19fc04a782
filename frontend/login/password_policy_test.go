package login

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePasswordPolicy(t *testing.T) {
	cases := []struct {
		name    string
		pwd     string
		ok      bool
		missing string
	}{
		{name: "valid mixed", pwd: "Receiving#2030", ok: true},
		{name: "short", pwd: "A1!bc", missing: "at least 12 characters"},
		{name: "letters only", pwd: "abcdefghijklmno", missing: "include a digit"},
		{name: "missing symbol", pwd: "Receiving2030x", missing: "include a symbol"},
		{name: "missing upper", pwd: "receiving#2030", missing: "upper-case"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordPolicy(tc.pwd)
			if tc.ok {
				if err != nil {
					t.Fatalf("expected valid password, got error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected ErrWeakPassword, got %v", err)
			}
			if !strings.HasPrefix(err.Error(), "password must ") || !strings.Contains(err.Error(), tc.missing) {
				t.Fatalf("expected message about %q, got %q", tc.missing, err.Error())
			}
		})
	}
}

func TestValidatePasswordForUserRejectsUsername(t *testing.T) {
	if err := ValidatePasswordForUser("dock", "Dock#Receiving2030"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected username rejection, got %v", err)
	}
	if err := ValidatePasswordForUser("receiver1", "Receiving#2030"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}
