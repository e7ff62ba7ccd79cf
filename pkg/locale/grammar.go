package locale

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/locfold/pkg/errors"
)

const (
	// DefaultPrefix is the namespace shared by every locale directory.
	DefaultPrefix = "values"

	// DefaultRegionPattern matches Android style region qualifiers (rSA, rBR).
	DefaultRegionPattern = "r[A-Z]{2}"
)

// Grammar parses locale directory names.
type Grammar struct {
	prefix        string
	regionPattern string
	variant       *regexp.Regexp
	looseRegion   *regexp.Regexp
}

// NewGrammar compiles a grammar for the given prefix and region qualifier
// pattern. The pattern must match the whole qualifier segment.
func NewGrammar(prefix, regionPattern string) (*Grammar, error) {
	if prefix == "" {
		return nil, errors.New(errors.ErrInvalidInput, "locale prefix must not be empty")
	}
	if strings.Contains(prefix, "-") {
		return nil, errors.Newf(errors.ErrInvalidInput, "locale prefix %q must not contain '-'", prefix)
	}
	if regionPattern == "" {
		return nil, errors.New(errors.ErrInvalidInput, "region pattern must not be empty")
	}

	variant, err := regexp.Compile(fmt.Sprintf(`^%s-(.+)-(%s)$`, regexp.QuoteMeta(prefix), regionPattern))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid region pattern %q", regionPattern)
	}
	loose, err := regexp.Compile(fmt.Sprintf(`(?i)^(?:%s)$`, regionPattern))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid region pattern %q", regionPattern)
	}

	return &Grammar{
		prefix:        prefix,
		regionPattern: regionPattern,
		variant:       variant,
		looseRegion:   loose,
	}, nil
}

// MustGrammar is NewGrammar for patterns known to be valid.
func MustGrammar(prefix, regionPattern string) *Grammar {
	g, err := NewGrammar(prefix, regionPattern)
	if err != nil {
		panic(err)
	}
	return g
}

// DefaultGrammar returns the Android resource grammar (values-<lang>-r<REGION>).
func DefaultGrammar() *Grammar {
	return MustGrammar(DefaultPrefix, DefaultRegionPattern)
}

// Prefix returns the locale namespace prefix.
func (g *Grammar) Prefix() string {
	return g.prefix
}

// RegionPattern returns the region qualifier pattern the grammar was built with.
func (g *Grammar) RegionPattern() string {
	return g.regionPattern
}

// IsLocaleDir reports whether name belongs to the locale namespace at all.
func (g *Grammar) IsLocaleDir(name string) bool {
	return strings.HasPrefix(name, g.prefix)
}

// Classify parses a directory name.
func (g *Grammar) Classify(name string) Dir {
	d := Dir{Name: name}

	switch {
	case name == g.prefix:
		d.Kind = KindDefault
		return d
	case !strings.HasPrefix(name, g.prefix+"-"):
		d.Kind = KindUnrelated
		return d
	}

	if m := g.variant.FindStringSubmatch(name); m != nil {
		d.Kind = KindVariant
		d.Lang = m[1]
		d.Qualifier = m[2]
		d.Region = strings.TrimPrefix(m[2], "r")
		d.BaseName = g.prefix + "-" + m[1]
		return d
	}

	lang := strings.TrimPrefix(name, g.prefix+"-")
	if lang == "" || g.hasMalformedQualifier(lang) {
		d.Kind = KindMalformed
		return d
	}

	d.Kind = KindBase
	d.Lang = lang
	return d
}

// BaseName returns the derived base directory name of a variant.
func (g *Grammar) BaseName(name string) (string, bool) {
	d := g.Classify(name)
	if d.Kind != KindVariant {
		return "", false
	}
	return d.BaseName, true
}

// hasMalformedQualifier reports whether any segment after the language looks
// like a region qualifier that failed the strict pattern.
func (g *Grammar) hasMalformedQualifier(lang string) bool {
	segments := strings.Split(lang, "-")
	for _, seg := range segments[1:] {
		if seg == "" || g.looseRegion.MatchString(seg) || looksLikeRegion(seg) {
			return true
		}
	}
	return false
}

func looksLikeRegion(seg string) bool {
	if len(seg) < 2 || len(seg) > 4 {
		return false
	}
	if seg[0] != 'r' && seg[0] != 'R' {
		return false
	}
	for _, c := range seg[1:] {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
