package nfa

import (
	"fmt"
	"regexp/syntax"
	"unicode"
	"unicode/utf8"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// UTF8 selects UTF-8 byte sequences for code points. When false the
	// program is Latin-1: code points up to 0xFF are single bytes and larger
	// ones never match.
	UTF8 bool

	// Captures emits Capture states for group 0 and every explicit group.
	// Pattern sets compile without them.
	Captures bool

	// MaxRecursionDepth limits recursion during compilation to prevent stack overflow
	MaxRecursionDepth int

	// MemoryLimit is the program budget in bytes; 0 disables it.
	// Exceeding it fails compilation with ErrTooLarge.
	MemoryLimit int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		UTF8:              true,
		Captures:          true,
		MaxRecursionDepth: 1000,
	}
}

// Validate checks the configuration.
func (c CompilerConfig) Validate() error {
	if c.MaxRecursionDepth <= 0 {
		return fmt.Errorf("%w: MaxRecursionDepth must be > 0", ErrInvalidConfig)
	}
	if c.MemoryLimit < 0 {
		return fmt.Errorf("%w: MemoryLimit must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// Compiler compiles regexp/syntax.Regexp patterns into Thompson NFAs
type Compiler struct {
	config   CompilerConfig
	builder  *Builder
	suffixes *utf8SuffixCache
	depth    int
}

// frag is a compiled fragment. end always has a single patchable exit.
type frag struct {
	start, end StateID
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = DefaultCompilerConfig().MaxRecursionDepth
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses pattern with Perl syntax and compiles it.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return c.CompileRegexp(re)
}

// CompileRegexp compiles a single parsed pattern.
func (c *Compiler) CompileRegexp(re *syntax.Regexp) (*NFA, error) {
	if err := c.config.Validate(); err != nil {
		return nil, err
	}
	c.reset()

	re = re.Simplify()
	body, err := c.compile(re)
	if err != nil {
		return nil, err
	}

	match := c.builder.AddMatch(0)
	start := body.start
	captureCount := 0
	var names []string
	if c.config.Captures {
		open := c.builder.AddCapture(0, body.start)
		closing := c.builder.AddCapture(1, match)
		if err := c.builder.Patch(body.end, closing); err != nil {
			return nil, &CompileError{Err: err}
		}
		start = open
		captureCount = re.MaxCap() + 1
		names = re.CapNames()
	} else if err := c.builder.Patch(body.end, match); err != nil {
		return nil, &CompileError{Err: err}
	}

	return c.finish(start, WithCaptureCount(captureCount), WithCaptureNames(names))
}

// CompileSet compiles several patterns into one program. Pattern i ends in
// a Match state carrying ordinal i. Captures are never emitted for sets.
func (c *Compiler) CompileSet(res []*syntax.Regexp) (*NFA, error) {
	if err := c.config.Validate(); err != nil {
		return nil, err
	}
	c.reset()

	starts := make([]StateID, 0, len(res))
	for i, re := range res {
		body, err := c.compile(re.Simplify())
		if err != nil {
			return nil, err
		}
		match := c.builder.AddMatch(i)
		if err := c.builder.Patch(body.end, match); err != nil {
			return nil, &CompileError{Err: err}
		}
		starts = append(starts, body.start)
	}

	var start StateID
	if len(starts) == 0 {
		start = c.builder.AddFail()
	} else {
		start = c.splitChain(starts)
	}
	return c.finish(start, WithPatternCount(len(res)))
}

func (c *Compiler) reset() {
	c.builder = NewBuilder()
	c.builder.SetMemoryLimit(c.config.MemoryLimit)
	if c.suffixes == nil {
		c.suffixes = newUTF8SuffixCache()
	} else {
		c.suffixes.clear()
	}
	c.depth = 0
}

// finish adds the unanchored prefix, a non-greedy any-byte loop, and builds.
func (c *Compiler) finish(anchored StateID, opts ...BuildOption) (*NFA, error) {
	split := c.builder.AddSplit(anchored, InvalidState)
	loop := c.builder.AddByteRange(0x00, 0xFF, split)
	if err := c.builder.PatchSplit(split, anchored, loop); err != nil {
		return nil, &CompileError{Err: err}
	}
	c.builder.SetStarts(anchored, split)
	if c.builder.OverLimit() {
		return nil, &CompileError{Err: ErrTooLarge}
	}

	opts = append([]BuildOption{WithUTF8(c.config.UTF8)}, opts...)
	nfa, err := c.builder.Build(opts...)
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return nfa, nil
}

func (c *Compiler) compile(re *syntax.Regexp) (frag, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.config.MaxRecursionDepth {
		return frag{}, &CompileError{Err: ErrTooComplex}
	}
	if c.builder.OverLimit() {
		return frag{}, &CompileError{Err: ErrTooLarge}
	}

	switch re.Op {
	case syntax.OpNoMatch:
		return c.fail(), nil
	case syntax.OpEmptyMatch:
		return c.empty(), nil
	case syntax.OpLiteral:
		return c.literal(re.Rune, re.Flags&syntax.FoldCase != 0)
	case syntax.OpCharClass:
		return c.class(re.Rune), nil
	case syntax.OpAnyCharNotNL:
		return c.class([]rune{0, '\n' - 1, '\n' + 1, unicode.MaxRune}), nil
	case syntax.OpAnyChar:
		return c.class([]rune{0, unicode.MaxRune}), nil
	case syntax.OpBeginLine:
		return c.look(LookStartLine), nil
	case syntax.OpEndLine:
		return c.look(LookEndLine), nil
	case syntax.OpBeginText:
		return c.look(LookStartText), nil
	case syntax.OpEndText:
		return c.look(LookEndText), nil
	case syntax.OpWordBoundary:
		return c.look(LookWordBoundary), nil
	case syntax.OpNoWordBoundary:
		return c.look(LookNoWordBoundary), nil
	case syntax.OpCapture:
		return c.capture(re)
	case syntax.OpStar:
		return c.star(re.Sub[0], re.Flags&syntax.NonGreedy != 0)
	case syntax.OpPlus:
		return c.plus(re.Sub[0], re.Flags&syntax.NonGreedy != 0)
	case syntax.OpQuest:
		return c.quest(re.Sub[0], re.Flags&syntax.NonGreedy != 0)
	case syntax.OpRepeat:
		// Simplify removes repeats; a nested one left behind still can be
		// expanded on its own.
		simple := re.Simplify()
		if simple.Op == syntax.OpRepeat {
			return frag{}, &CompileError{Err: fmt.Errorf("%w: %v", ErrUnsupported, re.Op)}
		}
		return c.compile(simple)
	case syntax.OpConcat:
		return c.concat(re.Sub)
	case syntax.OpAlternate:
		return c.alternate(re.Sub)
	default:
		return frag{}, &CompileError{Err: fmt.Errorf("%w: %v", ErrUnsupported, re.Op)}
	}
}

func (c *Compiler) empty() frag {
	id := c.builder.AddEpsilon(InvalidState)
	return frag{id, id}
}

// fail never matches. The end state is unreachable but keeps the fragment
// patchable like every other.
func (c *Compiler) fail() frag {
	return frag{c.builder.AddFail(), c.builder.AddEpsilon(InvalidState)}
}

func (c *Compiler) look(l Look) frag {
	id := c.builder.AddLook(l, InvalidState)
	return frag{id, id}
}

func (c *Compiler) capture(re *syntax.Regexp) (frag, error) {
	sub, err := c.compile(re.Sub[0])
	if err != nil {
		return frag{}, err
	}
	if !c.config.Captures {
		return sub, nil
	}
	slot := uint32(re.Cap) * 2
	open := c.builder.AddCapture(slot, sub.start)
	closing := c.builder.AddCapture(slot+1, InvalidState)
	if err := c.builder.Patch(sub.end, closing); err != nil {
		return frag{}, err
	}
	return frag{open, closing}, nil
}

func (c *Compiler) literal(runes []rune, fold bool) (frag, error) {
	if len(runes) == 0 {
		return c.empty(), nil
	}
	var result frag
	for i, r := range runes {
		var f frag
		if fold {
			f = c.class(foldRanges(r))
		} else {
			f = c.class([]rune{r, r})
		}
		if i == 0 {
			result = f
			continue
		}
		if err := c.builder.Patch(result.end, f.start); err != nil {
			return frag{}, err
		}
		result.end = f.end
	}
	return result, nil
}

// foldRanges returns the simple case folding orbit of r as sorted ranges.
func foldRanges(r rune) []rune {
	runes := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		runes = append(runes, f)
	}
	sortRunes(runes)
	ranges := make([]rune, 0, 2*len(runes))
	for _, x := range runes {
		if n := len(ranges); n > 0 && ranges[n-1]+1 == x {
			ranges[n-1] = x
			continue
		}
		ranges = append(ranges, x, x)
	}
	return ranges
}

func sortRunes(rs []rune) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j] < rs[j-1]; j-- {
			rs[j], rs[j-1] = rs[j-1], rs[j]
		}
	}
}

// class compiles sorted, disjoint code point ranges given as lo/hi pairs.
func (c *Compiler) class(ranges []rune) frag {
	if !c.config.UTF8 {
		return c.latin1Class(ranges)
	}

	trie := &utf8Trie{}
	for i := 0; i+1 < len(ranges); i += 2 {
		for _, seq := range utf8Sequences(ranges[i], ranges[i+1]) {
			trie.insert(seq)
		}
	}
	if len(trie.edges) == 0 {
		return c.fail()
	}

	end := c.builder.AddEpsilon(InvalidState)
	return frag{c.compileTrie(trie, end), end}
}

func (c *Compiler) compileTrie(t *utf8Trie, end StateID) StateID {
	trans := make([]Transition, len(t.edges))
	for i, e := range t.edges {
		target := end
		if e.child != nil {
			target = c.compileTrie(e.child, end)
		}
		trans[i] = Transition{Lo: e.r.lo, Hi: e.r.hi, Next: target}
	}
	if len(trans) == 1 {
		// continuation bytes repeat across sequences; share their states
		return c.suffixes.getOrAdd(c.builder, trans[0].Lo, trans[0].Hi, trans[0].Next)
	}
	return c.builder.AddSparse(trans)
}

func (c *Compiler) latin1Class(ranges []rune) frag {
	var trans []Transition
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		if lo > 0xFF {
			break
		}
		if hi > 0xFF {
			hi = 0xFF
		}
		trans = append(trans, Transition{Lo: byte(lo), Hi: byte(hi), Next: InvalidState})
	}
	switch len(trans) {
	case 0:
		return c.fail()
	case 1:
		id := c.builder.AddByteRange(trans[0].Lo, trans[0].Hi, InvalidState)
		return frag{id, id}
	default:
		id := c.builder.AddSparse(trans)
		return frag{id, id}
	}
}

func (c *Compiler) concat(subs []*syntax.Regexp) (frag, error) {
	if len(subs) == 0 {
		return c.empty(), nil
	}
	result, err := c.compile(subs[0])
	if err != nil {
		return frag{}, err
	}
	for _, sub := range subs[1:] {
		next, err := c.compile(sub)
		if err != nil {
			return frag{}, err
		}
		if err := c.builder.Patch(result.end, next.start); err != nil {
			return frag{}, err
		}
		result.end = next.end
	}
	return result, nil
}

func (c *Compiler) alternate(subs []*syntax.Regexp) (frag, error) {
	if len(subs) == 0 {
		return c.fail(), nil
	}
	starts := make([]StateID, 0, len(subs))
	join := c.builder.AddEpsilon(InvalidState)
	for _, sub := range subs {
		f, err := c.compile(sub)
		if err != nil {
			return frag{}, err
		}
		if err := c.builder.Patch(f.end, join); err != nil {
			return frag{}, err
		}
		starts = append(starts, f.start)
	}
	return frag{c.splitChain(starts), join}, nil
}

// splitChain builds Split(t0, Split(t1, ...)) so earlier targets win.
func (c *Compiler) splitChain(targets []StateID) StateID {
	if len(targets) == 1 {
		return targets[0]
	}
	right := c.splitChain(targets[1:])
	return c.builder.AddSplit(targets[0], right)
}

// loopSplit orders a quantifier's branches: greedy prefers another
// iteration, non-greedy prefers to leave.
func (c *Compiler) loopSplit(body, exit StateID, nonGreedy bool) StateID {
	if nonGreedy {
		return c.builder.AddSplit(exit, body)
	}
	return c.builder.AddSplit(body, exit)
}

// star compiles x*. A nullable x is compiled as (x+)? instead: a plain loop
// would let an empty iteration fall back to the loop split, where it loses
// to the branches that consume input.
func (c *Compiler) star(sub *syntax.Regexp, nonGreedy bool) (frag, error) {
	if canMatchEmpty(sub) {
		body, err := c.plus(sub, nonGreedy)
		if err != nil {
			return frag{}, err
		}
		return c.optional(body, nonGreedy)
	}
	body, err := c.compile(sub)
	if err != nil {
		return frag{}, err
	}
	end := c.builder.AddEpsilon(InvalidState)
	split := c.loopSplit(body.start, end, nonGreedy)
	if err := c.builder.Patch(body.end, split); err != nil {
		return frag{}, err
	}
	return frag{split, end}, nil
}

func (c *Compiler) plus(sub *syntax.Regexp, nonGreedy bool) (frag, error) {
	body, err := c.compile(sub)
	if err != nil {
		return frag{}, err
	}
	end := c.builder.AddEpsilon(InvalidState)
	split := c.loopSplit(body.start, end, nonGreedy)
	if err := c.builder.Patch(body.end, split); err != nil {
		return frag{}, err
	}
	return frag{body.start, end}, nil
}

func (c *Compiler) quest(sub *syntax.Regexp, nonGreedy bool) (frag, error) {
	body, err := c.compile(sub)
	if err != nil {
		return frag{}, err
	}
	return c.optional(body, nonGreedy)
}

func (c *Compiler) optional(body frag, nonGreedy bool) (frag, error) {
	end := c.builder.AddEpsilon(InvalidState)
	split := c.loopSplit(body.start, end, nonGreedy)
	if err := c.builder.Patch(body.end, end); err != nil {
		return frag{}, err
	}
	return frag{split, end}, nil
}

// canMatchEmpty reports whether re matches some empty string, ignoring
// whether its assertions hold.
func canMatchEmpty(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpEmptyMatch, syntax.OpStar, syntax.OpQuest,
		syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	case syntax.OpLiteral:
		return len(re.Rune) == 0
	case syntax.OpCapture, syntax.OpPlus:
		return canMatchEmpty(re.Sub[0])
	case syntax.OpRepeat:
		return re.Min == 0 || canMatchEmpty(re.Sub[0])
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if !canMatchEmpty(sub) {
				return false
			}
		}
		return true
	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			if canMatchEmpty(sub) {
				return true
			}
		}
	}
	return false
}

// EncodeRune appends the encoding of r in the program's encoding. In Latin-1
// mode code points above 0xFF have no encoding and ok is false.
func EncodeRune(dst []byte, r rune, utf8Mode bool) (out []byte, ok bool) {
	if !utf8Mode {
		if r > 0xFF || r < 0 {
			return dst, false
		}
		return append(dst, byte(r)), true
	}
	if !utf8.ValidRune(r) {
		return dst, false
	}
	return utf8.AppendRune(dst, r), true
}
