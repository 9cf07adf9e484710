package metadata

import (
	"regexp"
	"sync"
)

// RegexCache maps pattern text to its compiled form. Lookups never block each
// other; when two goroutines miss on the same pattern both compile it and the
// first value stored wins.
type RegexCache struct {
	entries sync.Map
}

// patterns is shared by every Database in the process.
var patterns = &RegexCache{}

// Get returns the compiled form of pattern.
func (c *RegexCache) Get(pattern string) (*regexp.Regexp, error) {
	if re, ok := c.entries.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	actual, _ := c.entries.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// Len reports the number of cached patterns.
func (c *RegexCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// prefix compiles pattern so that it only matches at the start of the input.
func (c *RegexCache) prefix(pattern string) (*regexp.Regexp, error) {
	return c.Get("^(?:" + pattern + ")")
}

// whole compiles pattern so that it only matches the entire input.
func (c *RegexCache) whole(pattern string) (*regexp.Regexp, error) {
	return c.Get("^(?:" + pattern + ")$")
}
