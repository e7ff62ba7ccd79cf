package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Kind is the structural classification of a directory name.
type Kind int

const (
	// KindUnrelated names do not start with the locale prefix.
	KindUnrelated Kind = iota
	// KindDefault is the bare prefix directory (values).
	KindDefault
	// KindBase is a locale directory without a region qualifier.
	KindBase
	// KindVariant is a locale directory with a region qualifier.
	KindVariant
	// KindMalformed starts with the prefix but fails the grammar.
	KindMalformed
)

var kindNames = map[Kind]string{
	KindUnrelated: "unrelated",
	KindDefault:   "default",
	KindBase:      "base",
	KindVariant:   "variant",
	KindMalformed: "malformed",
}

// String returns the string representation of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText lets reports encode kinds by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown locale kind: %s", text)
}

// Dir is a classified locale directory name. BaseName is derived from Name
// and only set for variants.
type Dir struct {
	Name      string `json:"name" yaml:"name"`
	Kind      Kind   `json:"kind" yaml:"kind"`
	Lang      string `json:"lang,omitempty" yaml:"lang,omitempty"`
	Qualifier string `json:"qualifier,omitempty" yaml:"qualifier,omitempty"`
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	BaseName  string `json:"base,omitempty" yaml:"base,omitempty"`
}

// IsVariant reports whether the directory carries a region qualifier.
func (d Dir) IsVariant() bool {
	return d.Kind == KindVariant
}

// Tag parses the directory's language and region as a BCP 47 tag. Android
// "b+" qualifiers (b+sr+Latn) are understood.
func (d Dir) Tag() (language.Tag, error) {
	if d.Lang == "" {
		return language.Und, fmt.Errorf("%s has no language", d.Name)
	}
	code := d.Lang
	if strings.HasPrefix(code, "b+") {
		code = strings.ReplaceAll(strings.TrimPrefix(code, "b+"), "+", "-")
	}
	if d.Region != "" {
		code += "-" + d.Region
	}
	return language.Parse(code)
}

// DisplayName returns the English name of the locale, or "" when the
// directory does not parse as a language tag.
func (d Dir) DisplayName() string {
	tag, err := d.Tag()
	if err != nil {
		return ""
	}
	return display.English.Tags().Name(tag)
}
