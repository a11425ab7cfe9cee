// Package language defines the set of output languages the pipeline supports
// and maps user input (display names, native names, BCP-47 tags) onto them.
package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/iconidentify/vidseo/internal/domain"
)

// Canonical language names. These are the keys used by prompt and fallback tables.
const (
	English    = "English"
	Spanish    = "Spanish"
	French     = "French"
	German     = "German"
	Italian    = "Italian"
	Portuguese = "Portuguese"
	Japanese   = "Japanese"
	Korean     = "Korean"
	Chinese    = "Chinese"
	Russian    = "Russian"
	Arabic     = "Arabic"
	Hindi      = "Hindi"
)

// Default is the baseline language used when input is empty.
const Default = English

// Language is one supported output language.
type Language struct {
	Name   string       `json:"name"`
	Code   string       `json:"code"`
	Native string       `json:"native"`
	Tag    language.Tag `json:"-"`
}

var base = []struct {
	name string
	tag  language.Tag
}{
	{English, language.English},
	{Spanish, language.Spanish},
	{French, language.French},
	{German, language.German},
	{Italian, language.Italian},
	{Portuguese, language.Portuguese},
	{Japanese, language.Japanese},
	{Korean, language.Korean},
	{Chinese, language.Chinese},
	{Russian, language.Russian},
	{Arabic, language.Arabic},
}

// Set is an immutable collection of supported languages.
type Set struct {
	langs  []Language
	byKey  map[string]int
	titler cases.Caser
}

// NewSet builds the supported set. Hindi is included only when includeHindi is set.
func NewSet(includeHindi bool) *Set {
	s := &Set{
		byKey:  make(map[string]int),
		titler: cases.Title(language.English),
	}
	add := func(name string, tag language.Tag) {
		b, _ := tag.Base()
		l := Language{
			Name:   name,
			Code:   b.String(),
			Native: display.Self.Name(tag),
			Tag:    tag,
		}
		idx := len(s.langs)
		s.langs = append(s.langs, l)
		for _, key := range []string{name, l.Code, l.Native, display.English.Languages().Name(tag)} {
			if key == "" {
				continue
			}
			s.byKey[strings.ToLower(key)] = idx
		}
	}
	for _, b := range base {
		add(b.name, b.tag)
	}
	if includeHindi {
		add(Hindi, language.Hindi)
	}
	return s
}

// All returns the supported languages in display order.
func (s *Set) All() []Language {
	out := make([]Language, len(s.langs))
	copy(out, s.langs)
	return out
}

// Names returns the canonical names in display order.
func (s *Set) Names() []string {
	names := make([]string, len(s.langs))
	for i, l := range s.langs {
		names[i] = l.Name
	}
	return names
}

// Contains reports whether the canonical name is supported.
func (s *Set) Contains(name string) bool {
	idx, ok := s.byKey[strings.ToLower(name)]
	return ok && s.langs[idx].Name == name
}

// Normalize maps user input onto a canonical language name. Empty input
// yields the default language.
func (s *Set) Normalize(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Default, nil
	}
	if idx, ok := s.byKey[strings.ToLower(input)]; ok {
		return s.langs[idx].Name, nil
	}

	tag, err := language.Parse(input)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, input)
	}
	b, _ := tag.Base()
	for _, l := range s.langs {
		lb, _ := l.Tag.Base()
		if lb == b {
			return l.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedLanguage, s.titler.String(input))
}

// Lookup returns the Language for a canonical name.
func (s *Set) Lookup(name string) (Language, bool) {
	idx, ok := s.byKey[strings.ToLower(name)]
	if !ok {
		return Language{}, false
	}
	return s.langs[idx], true
}
