package literal

import (
	"regexp/syntax"
	"unicode"
	"unicode/utf8"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: prevents extracting very long literals
//   - MaxClassSize: prevents expanding large character classes like [a-z]
type ExtractorConfig struct {
	// MaxLiterals limits the maximum number of literals to extract.
	// Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the maximum length of each extracted literal.
	// Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the number of code points a class may hold to be
	// expanded into single literals.
	// Default: 10.
	MaxClassSize int

	// Latin1 encodes code points as single bytes; code points above 0xFF
	// cannot occur. Otherwise literals are UTF-8.
	Latin1 bool
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts prefix literal sequences from regex patterns.
//
// Example:
//
//	re, _ := syntax.Parse("(hello|world)", syntax.Perl)
//	extractor := literal.New(literal.DefaultConfig())
//	prefixes := extractor.ExtractPrefixes(re)
//	// prefixes = ["hello", "world"]
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes returns the literals that every match of re begins with.
//
// Examples:
//
//	"hello"         → ["hello"] (exact)
//	"(foo|bar)\d"   → ["foo", "bar"] (inexact)
//	"[ab]c"         → ["ac", "bc"] (exact)
//	"^foo"          → ["foo"] (assertions consume nothing)
//	"a*b"           → infinite
//
// The result is infinite when no useful prefix is known.
func (e *Extractor) ExtractPrefixes(re *syntax.Regexp) *Seq {
	seq := e.prefixes(re, 0)
	if !seq.IsFinite() {
		return seq
	}
	// an inexact empty literal means a match may begin with anything
	for _, lit := range seq.literals {
		if len(lit.Bytes) == 0 && !lit.Complete {
			return NewInfiniteSeq()
		}
	}
	seq.Dedup()
	return seq
}

func (e *Extractor) prefixes(re *syntax.Regexp, depth int) *Seq {
	if depth > 100 {
		return NewInfiniteSeq()
	}

	switch re.Op {
	case syntax.OpNoMatch:
		return NewSeq()

	case syntax.OpEmptyMatch,
		syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return NewSeq(NewLiteral([]byte{}, true))

	case syntax.OpLiteral:
		return e.literal(re.Rune, re.Flags&syntax.FoldCase != 0)

	case syntax.OpCharClass:
		return e.class(re.Rune)

	case syntax.OpCapture:
		return e.prefixes(re.Sub[0], depth+1)

	case syntax.OpConcat:
		result := NewSeq(NewLiteral([]byte{}, true))
		for _, sub := range re.Sub {
			if !result.IsFinite() || !anyComplete(result) {
				break
			}
			next := e.prefixes(sub, depth+1)
			if next.IsFinite() && result.CrossSize(next) > e.config.MaxLiterals {
				result.MakeInexact()
				break
			}
			result.Cross(next)
			result.Truncate(e.config.MaxLiteralLen)
		}
		return result

	case syntax.OpAlternate:
		result := NewSeq()
		for _, sub := range re.Sub {
			result.Union(e.prefixes(sub, depth+1))
			if !result.IsFinite() {
				return result
			}
			if result.Len() > e.config.MaxLiterals {
				return NewInfiniteSeq()
			}
		}
		return result

	case syntax.OpPlus:
		seq := e.prefixes(re.Sub[0], depth+1)
		seq.MakeInexact()
		return seq

	case syntax.OpRepeat:
		if re.Min == 0 {
			return NewInfiniteSeq()
		}
		seq := e.prefixes(re.Sub[0], depth+1)
		if re.Min != 1 || re.Max != 1 {
			seq.MakeInexact()
		}
		return seq

	default:
		// OpStar, OpQuest, OpAnyChar, OpAnyCharNotNL: matches may begin
		// anywhere
		return NewInfiniteSeq()
	}
}

func anyComplete(s *Seq) bool {
	for _, lit := range s.Literals() {
		if lit.Complete {
			return true
		}
	}
	return false
}

// literal expands a literal string. Case-folded runes contribute every
// member of their folding orbit.
func (e *Extractor) literal(runes []rune, fold bool) *Seq {
	result := NewSeq(NewLiteral([]byte{}, true))
	for _, r := range runes {
		var alts []rune
		if fold {
			alts = foldOrbit(r)
		} else {
			alts = []rune{r}
		}

		next := NewSeq()
		for _, a := range alts {
			if b, ok := e.encode(nil, a); ok {
				next.literals = append(next.literals, NewLiteral(b, true))
			}
		}
		if result.CrossSize(next) > e.config.MaxLiterals {
			result.MakeInexact()
			break
		}
		result.Cross(next)
		if result.IsEmpty() {
			break
		}
	}
	result.Truncate(e.config.MaxLiteralLen)
	return result
}

// class expands a small character class into single code point literals.
func (e *Extractor) class(ranges []rune) *Seq {
	size := 0
	for i := 0; i+1 < len(ranges); i += 2 {
		size += int(ranges[i+1]-ranges[i]) + 1
		if size > e.config.MaxClassSize {
			return NewInfiniteSeq()
		}
	}

	result := NewSeq()
	for i := 0; i+1 < len(ranges); i += 2 {
		for r := ranges[i]; r <= ranges[i+1]; r++ {
			if b, ok := e.encode(nil, r); ok {
				result.literals = append(result.literals, NewLiteral(b, true))
			}
		}
	}
	return result
}

func (e *Extractor) encode(dst []byte, r rune) ([]byte, bool) {
	if e.config.Latin1 {
		if r < 0 || r > 0xFF {
			return dst, false
		}
		return append(dst, byte(r)), true
	}
	if !utf8.ValidRune(r) {
		return dst, false
	}
	return utf8.AppendRune(dst, r), true
}

func foldOrbit(r rune) []rune {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	return orbit
}
