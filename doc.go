// Package re2 provides regular expressions that match in time linear in
// the length of the text, whatever the pattern.
//
// Patterns use RE2 syntax: the Perl dialect by default, or the POSIX egrep
// dialect with Options.PosixSyntax. Backreferences and other constructs
// that need backtracking are rejected at parse time.
//
// Matching runs on automata only:
//   - Lazy DFA: answers whether a match exists, for single patterns and for
//     whole Sets at once, without tracking any capture state
//   - PikeVM: finds match spans and capture groups
//   - Prefilters: literal search that skips text where no match can start
//
// Basic usage:
//
//	re := re2.MustCompile(`(\w+)@(\w+)\.com`)
//	m := re.FindString("mail bob@example.com")
//	fmt.Println(m.GroupString(1)) // bob true
//
// Invalid patterns:
//
//	re := re2.New("wo(o", re2.DefaultOptions().WithLogErrors(false))
//	re.Ok()       // false
//	re.Error()    // "missing ): wo(o"
//	re.ErrorArg() // "wo(o"
//
// Scanning:
//
//	s := re2.MustCompile(`(\w+)=(\d+)`).ScanString("a=1 b=2")
//	for groups := range s.All() {
//	    fmt.Printf("%s -> %s\n", groups[0], groups[1])
//	}
//
// Pattern sets:
//
//	set, _ := re2.NewSet(re2.Unanchored, re2.DefaultOptions())
//	set.Add("error")
//	set.Add(`warn\w*`)
//	set.Compile()
//	ids, _ := set.MatchString("warning: disk full", re2.SetMatchOptions{})
//	// ids == []int{1}
//
// A compiled Regexp is safe for concurrent use.
package re2
