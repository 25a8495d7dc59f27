package aprspos

import (
	"sync"

	regexp "github.com/wasilibs/go-re2"
)

// compiledRegexp is the basic struct to save compiled regexp for runtime supplied patterns
type compiledRegexp struct {
	l *sync.RWMutex
	r map[string]*regexp.Regexp
}

// CompiledRegexps saves all compiled regexp here
var CompiledRegexps = create()

// create a compiledRegexp
func create() *compiledRegexp {
	return &compiledRegexp{
		l: new(sync.RWMutex),
		r: make(map[string]*regexp.Regexp),
	}
}

// Compile returns the cached regexp for expr, compiling it on first use
func (c *compiledRegexp) Compile(expr string) (*regexp.Regexp, error) {
	c.l.RLock()
	re, ok := c.r[expr]
	c.l.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	c.l.Lock()
	defer c.l.Unlock()

	// Keep whichever copy landed first
	if cached, ok := c.r[expr]; ok {
		return cached, nil
	}
	c.r[expr] = re
	return re, nil
}
