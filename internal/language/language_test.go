package language

import (
	"errors"
	"testing"

	"github.com/iconidentify/vidseo/internal/domain"
)

func TestNewSet_Hindi(t *testing.T) {
	with := NewSet(true)
	without := NewSet(false)

	if len(with.Names()) != 12 {
		t.Errorf("with Hindi: %d languages, want 12", len(with.Names()))
	}
	if len(without.Names()) != 11 {
		t.Errorf("without Hindi: %d languages, want 11", len(without.Names()))
	}
	if !with.Contains(Hindi) {
		t.Error("Hindi should be supported when enabled")
	}
	if without.Contains(Hindi) {
		t.Error("Hindi should not be supported when disabled")
	}
	if _, err := without.Normalize("hi"); !errors.Is(err, domain.ErrUnsupportedLanguage) {
		t.Errorf("Normalize(hi) error = %v, want ErrUnsupportedLanguage", err)
	}
}

func TestSet_Normalize(t *testing.T) {
	set := NewSet(true)
	tests := []struct {
		input string
		want  string
	}{
		{"", English},
		{"English", English},
		{"english", English},
		{"  SPANISH ", Spanish},
		{"es", Spanish},
		{"pt-BR", Portuguese},
		{"zh-Hans", Chinese},
		{"ja", Japanese},
		{"de-AT", German},
		{"hi", Hindi},
		{"español", Spanish},
		{"日本語", Japanese},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := set.Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSet_NormalizeUnsupported(t *testing.T) {
	set := NewSet(true)
	for _, input := range []string{"Klingon", "sw", "nl-NL"} {
		if _, err := set.Normalize(input); !errors.Is(err, domain.ErrUnsupportedLanguage) {
			t.Errorf("Normalize(%q) error = %v, want ErrUnsupportedLanguage", input, err)
		}
	}
}

func TestSet_Lookup(t *testing.T) {
	set := NewSet(false)
	l, ok := set.Lookup(French)
	if !ok {
		t.Fatal("Lookup(French) not found")
	}
	if l.Code != "fr" {
		t.Errorf("Code = %q, want fr", l.Code)
	}
	if l.Native == "" {
		t.Error("Native name should be populated")
	}
}

func TestSet_AllIsCopy(t *testing.T) {
	set := NewSet(false)
	all := set.All()
	all[0].Name = "mutated"
	if set.Names()[0] != English {
		t.Error("All() should return a copy")
	}
}
