package client

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/APRSCN/aprspos"
	regexp "github.com/wasilibs/go-re2"
)

const maxLineLen = 4096

// ScanLines reads newline terminated lines from r. Server comment lines
// starting with '#' are logged and never reach handler. Lines longer than
// maxLineLen are logged and skipped.
func ScanLines(ctx context.Context, r io.Reader, logger aprspos.Logger, handler func(line string)) error {
	reader := bufio.NewReaderSize(r, maxLineLen)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, isPrefix, err := reader.ReadLine()
		if err != nil {
			return endOfLines(err)
		}

		if isPrefix {
			skipped := len(raw)
			for isPrefix && err == nil {
				raw, isPrefix, err = reader.ReadLine()
				skipped += len(raw)
			}
			logger.Warn(aprspos.Fields{"bytes": skipped}, "Line too long, skipped")
			if err != nil {
				return endOfLines(err)
			}
			continue
		}

		line := strings.TrimRight(string(raw), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			logger.Info(nil, "Server info:", line)
			continue
		}

		handler(line)
	}
}

// endOfLines maps a clean EOF to nil
func endOfLines(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// LineFilter matches raw lines against a set of regular expressions
type LineFilter struct {
	patterns []*regexp.Regexp
}

// NewLineFilter compiles patterns, nil patterns give a filter matching nothing
func NewLineFilter(patterns []string) (*LineFilter, error) {
	f := &LineFilter{}
	for _, p := range patterns {
		re, err := aprspos.CompiledRegexps.Compile(p)
		if err != nil {
			return nil, err
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Match reports whether any pattern matches line
func (f *LineFilter) Match(line string) bool {
	for _, re := range f.patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
