package accounting

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"thoreinstein.com/failedjobs/pkg/config"
	fjerrors "thoreinstein.com/failedjobs/pkg/errors"
)

// Header describes the report being written.
type Header struct {
	User   string
	Since  string
	Cutoff int64
}

// ReportWriter receives the selected records of one scan.
type ReportWriter interface {
	WriteHeader(h Header) error
	WriteRecord(r Record) error
	// Flush writes anything still buffered. It is called once, also after a
	// failed scan.
	Flush() error
}

// NewReportWriter returns the ReportWriter for format.
func NewReportWriter(format string, w io.Writer) (ReportWriter, error) {
	switch format {
	case config.FormatText, "":
		return &textReport{w: bufio.NewWriter(w)}, nil
	case config.FormatTable:
		return &tableReport{w: w}, nil
	case config.FormatJSON:
		return &jsonReport{w: w}, nil
	default:
		return nil, fjerrors.NewConfigErrorWithCause(config.FlagFormat, "unsupported report format", config.ValidateFormat(format))
	}
}

// textReport writes "<job-number>, <job-script-name>" lines.
type textReport struct {
	w *bufio.Writer
}

func (t *textReport) WriteHeader(h Header) error {
	_, err := fmt.Fprintf(t.w, "# Failed jobs for user %s since last %s\n# SGE Job ID, Job script name\n", h.User, h.Since)
	return err
}

func (t *textReport) WriteRecord(r Record) error {
	_, err := fmt.Fprintf(t.w, "%s, %s\n", r.JobNumber, r.JobName)
	return err
}

func (t *textReport) Flush() error {
	return t.w.Flush()
}

// tableReport renders the selected jobs as an aligned table.
type tableReport struct {
	w      io.Writer
	header Header
	rows   [][]string
}

func (t *tableReport) WriteHeader(h Header) error {
	t.header = h
	return nil
}

func (t *tableReport) WriteRecord(r Record) error {
	t.rows = append(t.rows, []string{
		r.JobNumber,
		r.JobName,
		r.User,
		formatEpoch(r.EndTime),
		r.Failed,
		r.ExitStatus,
		(time.Duration(r.Wallclock()) * time.Second).String(),
	})
	return nil
}

func (t *tableReport) Flush() error {
	if _, err := fmt.Fprintf(t.w, "# Failed jobs for user %s since last %s\n", t.header.User, t.header.Since); err != nil {
		return err
	}
	table := tablewriter.NewWriter(t.w)
	table.SetHeader([]string{"JOB ID", "JOB NAME", "USER", "END TIME", "FAILED", "EXIT", "WALLCLOCK"})
	table.SetAutoWrapText(false)
	table.AppendBulk(t.rows)
	table.Render()
	return nil
}

// jsonReport emits one JSON document once the scan is done.
type jsonReport struct {
	w      io.Writer
	header Header
	jobs   []jsonJob
}

type jsonJob struct {
	JobNumber  string `json:"job_number"`
	JobName    string `json:"job_name"`
	User       string `json:"user"`
	Queue      string `json:"queue"`
	Host       string `json:"host"`
	EndTime    string `json:"end_time"`
	Failed     string `json:"failed"`
	ExitStatus string `json:"exit_status"`
	Wallclock  int64  `json:"wallclock_seconds"`
}

type jsonDocument struct {
	User   string    `json:"user"`
	Since  string    `json:"since"`
	Cutoff string    `json:"cutoff"`
	Jobs   []jsonJob `json:"jobs"`
}

func (j *jsonReport) WriteHeader(h Header) error {
	j.header = h
	return nil
}

func (j *jsonReport) WriteRecord(r Record) error {
	j.jobs = append(j.jobs, jsonJob{
		JobNumber:  r.JobNumber,
		JobName:    r.JobName,
		User:       r.User,
		Queue:      r.Queue,
		Host:       r.Host,
		EndTime:    formatEpoch(r.EndTime),
		Failed:     r.Failed,
		ExitStatus: r.ExitStatus,
		Wallclock:  r.Wallclock(),
	})
	return nil
}

func (j *jsonReport) Flush() error {
	doc := jsonDocument{
		User:   j.header.User,
		Since:  j.header.Since,
		Cutoff: formatEpoch(j.header.Cutoff),
		Jobs:   j.jobs,
	}
	if doc.Jobs == nil {
		doc.Jobs = []jsonJob{}
	}
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func formatEpoch(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}
