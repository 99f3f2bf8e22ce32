// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dispatch

import "strings"

// Pattern is a compiled route path template.
//
// A template is a slash-delimited mix of literal segments and {name}
// placeholders, e.g. "/users/{id}". A placeholder matches any non-empty
// run of non-slash characters. Placeholder names are documentation only:
// captured values are returned positionally in pattern order, so callers
// must know the parameter order of the routes they register.
type Pattern struct {
	raw      string
	segments []segment
}

type segment struct {
	literal string
	isParam bool
}

// CompilePattern parses a path template into a matcher. Compilation never
// fails: any segment that is not a full {name} placeholder is treated as
// a literal that must match byte-for-byte.
func CompilePattern(raw string) *Pattern {
	normalized := normalizePath(raw)

	parts := strings.Split(normalized, "/")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		if len(part) > 1 && strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			segments = append(segments, segment{isParam: true})
			continue
		}
		segments = append(segments, segment{literal: part})
	}

	return &Pattern{raw: raw, segments: segments}
}

// Match reports whether path matches the pattern and returns the values
// captured by its placeholders, in pattern order. A pattern with no
// placeholders matches only the identical literal path and yields an
// empty parameter list. A failed match is a legitimate outcome, not an
// error.
func (p *Pattern) Match(path string) ([]string, bool) {
	parts := strings.Split(normalizePath(path), "/")
	if len(parts) != len(p.segments) {
		return nil, false
	}

	params := []string{}
	for i, seg := range p.segments {
		if seg.isParam {
			if parts[i] == "" {
				return nil, false
			}
			params = append(params, parts[i])
			continue
		}
		if parts[i] != seg.literal {
			return nil, false
		}
	}

	return params, true
}

// String returns the original, uncompiled template.
func (p *Pattern) String() string {
	return p.raw
}

// normalizePath trims a single trailing slash and maps the empty path to
// "/". Both patterns and request paths pass through it, so "/users" and
// "/users/" resolve identically.
func normalizePath(path string) string {
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	if path == "" {
		return "/"
	}
	return path
}
