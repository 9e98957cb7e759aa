// Package match narrows a walked file list down to the working set for one
// run: regex selection on base names, plus optional exclude globs.
package match

import (
	"path"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// Type is the selection mode for the source file name.
type Type int

const (
	// ExactMatch treats the source file name as one literal path. No walk
	// is performed.
	ExactMatch Type = iota
	// RegexMatch enumerates the source subtree and filters base names by a
	// compiled pattern.
	RegexMatch
)

const (
	exactMatchName = "exact_match"
	regexMatchName = "regex_match"
)

func (t Type) String() string {
	if t == RegexMatch {
		return regexMatchName
	}
	return exactMatchName
}

// ParseType parses the CLI flag value for the match type.
func ParseType(s string) (Type, error) {
	switch s {
	case exactMatchName:
		return ExactMatch, nil
	case regexMatchName:
		return RegexMatch, nil
	default:
		return ExactMatch, errors.Errorf("unknown match type %q, options: %s, %s", s, exactMatchName, regexMatchName)
	}
}

// Select returns the files whose base name matches re, in input order. The
// pattern is never applied to the full path, only to the final segment.
func Select(files []string, re *regexp.Regexp) []string {
	var matched []string
	for _, file := range files {
		if re.MatchString(path.Base(file)) {
			matched = append(matched, file)
		}
	}
	return matched
}

// Exclude drops files whose base name matches any of the given glob
// patterns. An unparseable pattern is an error, not a silent no-op.
func Exclude(files []string, globs []string) ([]string, error) {
	if len(globs) == 0 {
		return files, nil
	}

	var kept []string
	for _, file := range files {
		excluded := false
		for _, glob := range globs {
			ok, err := doublestar.Match(glob, path.Base(file))
			if err != nil {
				return nil, errors.Errorf("bad exclude pattern %q: %w", glob, err)
			}
			if ok {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, file)
		}
	}
	return kept, nil
}
