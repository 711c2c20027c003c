package lazy

import (
	"github.com/coregx/re2/nfa"
)

// Compile builds a DFA over n with DefaultConfig.
func Compile(n *nfa.NFA) (*DFA, error) {
	return New(n, DefaultConfig())
}

// CompilePattern parses pattern and builds its DFA in one step. The program
// is compiled without capture states.
//
//	d, err := lazy.CompilePattern(`(foo|bar)\d+`)
//	if err != nil {
//	    return err
//	}
//	ok, err := d.IsMatch(d.NewCache(), nfa.NewInput([]byte("x foo123")))
func CompilePattern(pattern string) (*DFA, error) {
	return CompilePatternWithConfig(pattern, DefaultConfig())
}

// CompilePatternWithConfig is CompilePattern with an explicit Config. A
// pattern that fails to compile is reported as InvalidConfig.
func CompilePatternWithConfig(pattern string, config Config) (*DFA, error) {
	cc := nfa.DefaultCompilerConfig()
	cc.Captures = false
	prog, err := nfa.NewCompiler(cc).Compile(pattern)
	if err != nil {
		return nil, &DFAError{Kind: InvalidConfig, Message: "compiling program", Cause: err}
	}
	return New(prog, config)
}
