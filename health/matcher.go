package health

// Matcher decides, per indicator, whether its result counts toward the
// overall verdict. Indicators the matcher does not match are suppressed:
// their results are reported but excluded from the pass/fail AND.
type Matcher interface {
	// Matches reports whether the indicator's result should count.
	Matches(Indicator) bool
}

// MatcherFunc is an adapter to allow ordinary functions to be used as
// Matchers.
type MatcherFunc func(Indicator) bool

// Matches reports whether the indicator's result should count.
func (f MatcherFunc) Matches(ind Indicator) bool {
	return f(ind)
}

// MatchAll matches every indicator, suppressing nothing. It is the
// default matcher used by Check.
var MatchAll Matcher = MatcherFunc(func(Indicator) bool { return true })

// Include returns a matcher that counts only the named indicators;
// all others are suppressed.
func Include(names ...string) Matcher {
	set := nameSet(names)
	return MatcherFunc(func(ind Indicator) bool {
		return set[ind.Name()]
	})
}

// Exclude returns a matcher that suppresses the named indicators and
// counts all others.
func Exclude(names ...string) Matcher {
	set := nameSet(names)
	return MatcherFunc(func(ind Indicator) bool {
		return !set[ind.Name()]
	})
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
