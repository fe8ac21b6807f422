// Package classify inspects the content of eligible plaintext files and
// produces line-count statistics and statement pattern counters.
//
// Classification is line-level and heuristic. Statement detection is a set
// of independent regular expressions, not a grammar; false positives and
// negatives are accepted.
package classify

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/vvka-141/fgaudit/pkg/fgaudit"
)

// maxLineSize bounds a single scanned line. Generated 4GL and SQL sources
// occasionally carry very long literal lines.
const maxLineSize = 1 << 20

// eligibleExts is the fixed set of recognized plaintext extensions,
// compared case-insensitively.
var eligibleExts = map[string]bool{
	".4gl": true,
	".per": true,
	".inc": true,
	".sql": true,
	".sh":  true,
	".txt": true,
}

// buildScriptName is the bare filename recognized regardless of extension.
const buildScriptName = "makefile"

// Eligible reports whether a file with the given base name is subject to
// content inspection.
func Eligible(name string) bool {
	lower := strings.ToLower(name)
	if lower == buildScriptName {
		return true
	}
	if i := strings.LastIndex(lower, "."); i >= 0 {
		return eligibleExts[lower[i:]]
	}
	return false
}

// boilerplateRe matches license-header conventions: copyright notices,
// rights-reserved lines and usage-restriction wording. Such lines carry no
// information value and count as blank, never comment.
var boilerplateRe = regexp.MustCompile(`(?i)\bcopyright\b|\(c\)\s*\d{4}|\ball rights reserved\b|\blicensed under\b|\bpermission is hereby granted\b|\bwithout warranty\b`)

// trailingCommentRe matches code followed by a comment marker and comment
// text. Only evaluated for lines that do not begin with a marker.
var trailingCommentRe = regexp.MustCompile(`\S.*(?:#|--)\s*\S`)

// statementPatterns are the named heuristic predicates counted per line.
// Each is evaluated independently of the blank/comment classification and
// of the other predicates; one line may increment several counters.
var statementPatterns = []struct {
	name  string
	re    *regexp.Regexp
	count func(*fgaudit.ContentStats)
}{
	{
		name:  "function definition",
		re:    regexp.MustCompile(`(?i)^\s*(?:public\s+|private\s+)?function\s+[A-Za-z_]\w*`),
		count: func(s *fgaudit.ContentStats) { s.FunctionDefs++ },
	},
	{
		name:  "prepare from",
		re:    regexp.MustCompile(`(?i)\bprepare\s+[A-Za-z_]\w*\s+from\b`),
		count: func(s *fgaudit.ContentStats) { s.PrepareStmts++ },
	},
	{
		name:  "execute using",
		re:    regexp.MustCompile(`(?i)\bexecute\s+[A-Za-z_]\w*(?:\s+using\b)?`),
		count: func(s *fgaudit.ContentStats) { s.ExecuteStmts++ },
	},
	{
		name:  "run",
		re:    regexp.MustCompile(`(?i)^\s*run\s`),
		count: func(s *fgaudit.ContentStats) { s.RunStmts++ },
	},
	{
		name:  "call",
		re:    regexp.MustCompile(`(?i)^\s*call\s+[A-Za-z_]\w*`),
		count: func(s *fgaudit.ContentStats) { s.CallStmts++ },
	},
}

// File classifies the content of the file at path. A read failure mid-file
// is fail-soft: the statistics accumulated up to the failure are returned
// alongside the error and remain usable.
func File(path string) (fgaudit.ContentStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return fgaudit.ContentStats{}, err
	}
	defer f.Close()
	return Reader(f)
}

// Reader classifies lines read from r. Bytes that do not decode as UTF-8
// are replaced rather than treated as an error.
func Reader(r io.Reader) (fgaudit.ContentStats, error) {
	var stats fgaudit.ContentStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := strings.ToValidUTF8(scanner.Text(), "�")
		stats.TotalLines++
		classifyLine(line, &stats)
	}
	if err := scanner.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

// classifyLine applies the blank/comment rules and the statement predicates
// to one line.
//
// The marker-led decision is a strict precedence chain: boilerplate beats
// marker-only, which beats comment. The whitespace test and the trailing
// comment test run independently of that chain, so a line may increment
// more than one counter. That double counting is part of the established
// output and is kept as-is.
func classifyLine(line string, stats *fgaudit.ContentStats) {
	trimmed := strings.TrimSpace(line)
	rest, marker := leadingMarker(trimmed)

	switch {
	case boilerplateRe.MatchString(line):
		stats.BlankLines++
	case marker && strings.TrimSpace(rest) == "":
		stats.BlankLines++
	case marker:
		stats.CommentLines++
	}

	if trimmed == "" {
		stats.BlankLines++
	}

	if !marker && trimmed != "" && trailingCommentRe.MatchString(line) {
		stats.CommentLines++
	}

	for _, p := range statementPatterns {
		if p.re.MatchString(line) {
			p.count(stats)
		}
	}
}

// leadingMarker reports whether trimmed begins with a comment marker and
// returns the text after the marker.
func leadingMarker(trimmed string) (rest string, ok bool) {
	switch {
	case strings.HasPrefix(trimmed, "--"):
		return trimmed[2:], true
	case strings.HasPrefix(trimmed, "#"):
		return trimmed[1:], true
	}
	return "", false
}
