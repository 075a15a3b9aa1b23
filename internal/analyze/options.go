package analyze

import (
	"fmt"
	"regexp"
)

// Algorithm selects one of the named tokenization presets for prose analysis.
type Algorithm int

const (
	// AlgorithmDefault means no explicit selection; balanced rules apply.
	AlgorithmDefault Algorithm = iota
	// Minimal splits on whitespace only.
	Minimal
	// Balanced splits on whitespace plus hyphen and forward slash.
	Balanced
	// Maximal splits on any run of whitespace, punctuation, or symbols.
	Maximal
)

// String returns the string representation of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmDefault:
		return "default"
	case Minimal:
		return "minimal"
	case Balanced:
		return "balanced"
	case Maximal:
		return "maximal"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a user-supplied algorithm name to its Algorithm value.
// The empty string means no explicit selection. Unrecognized names are a
// configuration error, never silently defaulted.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "":
		return AlgorithmDefault, nil
	case "minimal":
		return Minimal, nil
	case "balanced":
		return Balanced, nil
	case "maximal":
		return Maximal, nil
	default:
		return AlgorithmDefault, fmt.Errorf("%w: unknown algorithm %q", ErrConfig, name)
	}
}

// Options select and adjust the prose tokenization rules.
//
// A named Algorithm expands to a fixed rule bundle; individual preserve/skip
// flags may be overridden on top of it. Supplying custom separators together
// with a named algorithm is a configuration error: the two are mutually
// exclusive ways of choosing a split rule.
//
// Override fields are pointers so that an unset override is distinct from an
// explicit false; use Bool for literals.
type Options struct {
	Algorithm        Algorithm
	Separators       string         // custom literal separator character set
	SeparatorPattern *regexp.Regexp // custom separator pattern

	PreserveURLs    *bool
	PreserveEmails  *bool
	PreserveNumbers *bool
	SkipPunctuation *bool
}

// Bool returns a pointer to v, for populating Options override fields.
func Bool(v bool) *bool {
	return &v
}

// splitConfig is a fully resolved tokenization rule bundle.
type splitConfig struct {
	separators      string
	pattern         *regexp.Regexp
	preserveURLs    bool
	preserveEmails  bool
	preserveNumbers bool
	skipPunctuation bool
}

// whitespaceSeparators is the minimal split set: space, tab, newline,
// carriage return, form feed, vertical tab.
const whitespaceSeparators = " \t\n\r\f\v"

// maximalSeparators matches any run of whitespace, punctuation, or symbol
// characters. RE2 keeps matching linear even on pathological input.
var maximalSeparators = regexp.MustCompile(`[\s\p{P}\p{S}]+`)

// algorithmPresets maps each named algorithm to its fixed rule bundle.
// Presets are data, not behavior; overrides are merged on top structurally.
var algorithmPresets = map[Algorithm]splitConfig{
	Minimal: {
		separators:      whitespaceSeparators,
		preserveURLs:    true,
		preserveEmails:  true,
		preserveNumbers: true,
		skipPunctuation: true,
	},
	Balanced: {
		separators:      whitespaceSeparators + "-/",
		preserveURLs:    true,
		preserveEmails:  true,
		preserveNumbers: true,
		skipPunctuation: true,
	},
	Maximal: {
		pattern:         maximalSeparators,
		skipPunctuation: true,
	},
}

// resolve merges the selected preset with any explicit overrides and reports
// conflicting selections.
func (o Options) resolve() (splitConfig, error) {
	custom := o.Separators != "" || o.SeparatorPattern != nil

	if o.Algorithm != AlgorithmDefault && custom {
		return splitConfig{}, fmt.Errorf(
			"%w: algorithm %q and custom word separators are mutually exclusive", ErrConfig, o.Algorithm)
	}
	if o.Separators != "" && o.SeparatorPattern != nil {
		return splitConfig{}, fmt.Errorf(
			"%w: separator character set and separator pattern are mutually exclusive", ErrConfig)
	}

	algorithm := o.Algorithm
	if algorithm == AlgorithmDefault {
		algorithm = Balanced
	}

	cfg, ok := algorithmPresets[algorithm]
	if !ok {
		return splitConfig{}, fmt.Errorf("%w: unknown algorithm %q", ErrConfig, o.Algorithm)
	}

	if custom {
		cfg.separators = o.Separators
		cfg.pattern = o.SeparatorPattern
	}

	// explicit flag overrides win over the preset
	if o.PreserveURLs != nil {
		cfg.preserveURLs = *o.PreserveURLs
	}
	if o.PreserveEmails != nil {
		cfg.preserveEmails = *o.PreserveEmails
	}
	if o.PreserveNumbers != nil {
		cfg.preserveNumbers = *o.PreserveNumbers
	}
	if o.SkipPunctuation != nil {
		cfg.skipPunctuation = *o.SkipPunctuation
	}

	return cfg, nil
}
