// Package accounting scans Grid Engine accounting files for failed jobs.
//
// An accounting file holds one colon-delimited record per finished job.
// Only the leading fields are decoded; the remaining resource usage columns
// are ignored.
package accounting

import (
	"strconv"
	"strings"

	fjerrors "thoreinstein.com/failedjobs/pkg/errors"
)

// FieldSeparator separates the columns of an accounting record.
const FieldSeparator = ":"

// Positional columns of an accounting record.
const (
	fieldQueue = iota
	fieldHost
	fieldGroup
	fieldUser
	fieldJobName
	fieldJobNumber
	fieldAccount
	fieldPriority
	fieldSubmitTime
	fieldStartTime
	fieldEndTime
	fieldFailed
	fieldExitStatus

	// MinFields is the minimum number of columns a data line must have.
	MinFields
)

// Record is the decoded prefix of one accounting line.
type Record struct {
	Queue     string
	Host      string
	Group     string
	User      string
	JobName   string // Job script name
	JobNumber string
	Account   string
	Priority  string

	SubmitTime int64 // Epoch seconds
	StartTime  int64 // Epoch seconds
	EndTime    int64 // Epoch seconds

	// Failed and ExitStatus stay as written; "0" means success and any
	// other text, including "00", counts as a failure.
	Failed     string
	ExitStatus string

	// Fields is the number of columns the line split into.
	Fields int
}

// ParseRecord splits line on ':' and decodes the leading columns. Trailing
// empty columns are not counted. Time columns that are not numeric decode
// as 0. A line with fewer than MinFields columns yields a RecordError of
// kind TooFewFields.
func ParseRecord(line string) (Record, error) {
	fields := splitFields(line)
	if len(fields) < MinFields {
		return Record{}, fjerrors.NewTooFewFieldsError(len(fields), MinFields)
	}

	return Record{
		Queue:      fields[fieldQueue],
		Host:       fields[fieldHost],
		Group:      fields[fieldGroup],
		User:       fields[fieldUser],
		JobName:    fields[fieldJobName],
		JobNumber:  fields[fieldJobNumber],
		Account:    fields[fieldAccount],
		Priority:   fields[fieldPriority],
		SubmitTime: leadingInt(fields[fieldSubmitTime]),
		StartTime:  leadingInt(fields[fieldStartTime]),
		EndTime:    leadingInt(fields[fieldEndTime]),
		Failed:     fields[fieldFailed],
		ExitStatus: fields[fieldExitStatus],
		Fields:     len(fields),
	}, nil
}

// Wallclock returns the run time of the job in seconds.
func (r Record) Wallclock() int64 {
	return r.EndTime - r.StartTime
}

// Abnormal reports whether the job failed or exited non-zero.
func (r Record) Abnormal() bool {
	return r.Failed != "0" || r.ExitStatus != "0"
}

func splitFields(line string) []string {
	fields := strings.Split(line, FieldSeparator)
	n := len(fields)
	for n > 0 && fields[n-1] == "" {
		n--
	}
	return fields[:n]
}

// leadingInt parses an optionally signed integer prefix of s after any
// leading whitespace. Anything unparseable yields 0.
func leadingInt(s string) int64 {
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
