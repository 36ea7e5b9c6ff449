package accounting

import "strings"

// CommentMarker marks a line that is not a job record. It is matched
// anywhere in the line, not only at the start.
const CommentMarker = "#"

// IsComment reports whether line should be skipped without parsing.
func IsComment(line string) bool {
	return strings.Contains(line, CommentMarker)
}

// Filter selects abnormally terminated jobs of one user that ended at or
// after Cutoff.
type Filter struct {
	User   string
	Cutoff int64 // Epoch seconds
}

// Selects reports whether r passes all three predicates.
func (f Filter) Selects(r Record) bool {
	return r.User == f.User && r.EndTime >= f.Cutoff && r.Abnormal()
}
