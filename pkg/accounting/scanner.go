package accounting

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"os"
	"time"

	"github.com/cockroachdb/errors"

	"thoreinstein.com/failedjobs/pkg/config"
	fjerrors "thoreinstein.com/failedjobs/pkg/errors"
)

// Stats counts what a scan saw.
type Stats struct {
	Lines    int // Lines read
	Comments int // Lines skipped because they contain the comment marker
	Records  int // Lines decoded as records
	Selected int // Records written to the report
}

// Scanner runs one failed-job report for a resolved configuration.
type Scanner struct {
	cfg    *config.Config
	now    func() time.Time
	logger *slog.Logger
	stdout io.Writer
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithClock replaces the wall clock used to compute the cutoff.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) {
		s.now = now
	}
}

// WithLogger sets the logger for scan diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// WithStdout sets the destination used when no output file is configured.
func WithStdout(w io.Writer) Option {
	return func(s *Scanner) {
		s.stdout = w
	}
}

// NewScanner creates a Scanner for cfg.
func NewScanner(cfg *config.Config, opts ...Option) *Scanner {
	s := &Scanner{
		cfg:    cfg,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cutoff returns the earliest end time, in epoch seconds, a job may have to
// be reported.
func (s *Scanner) Cutoff() int64 {
	return s.now().UTC().Unix() - s.cfg.Window
}

// Run opens the configured output, writes the report for the configured
// input and closes the output again. Standard output is never closed.
func (s *Scanner) Run(ctx context.Context) (stats Stats, err error) {
	out, closeOut, err := s.openOutput()
	if err != nil {
		return Stats{}, err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil {
			err = errors.CombineErrors(err, fjerrors.NewScanError(fjerrors.OpWriteOutput, s.cfg.Output, cerr))
		}
	}()

	report, err := NewReportWriter(s.cfg.Format, out)
	if err != nil {
		return Stats{}, err
	}

	s.logger.Debug("scanning accounting file",
		"input", s.cfg.Input,
		"user", s.cfg.User,
		"since", s.cfg.Since,
		"window_seconds", s.cfg.Window,
	)

	stats, err = s.Scan(ctx, Lines(s.cfg.Input), report)
	if err != nil {
		return stats, err
	}

	s.logger.Debug("scan complete",
		"lines", stats.Lines,
		"comments", stats.Comments,
		"records", stats.Records,
		"selected", stats.Selected,
	)
	return stats, nil
}

// Scan filters lines into report. The header is written before the first
// line is pulled. A malformed line aborts the scan; whatever was already
// written is still flushed.
func (s *Scanner) Scan(ctx context.Context, lines iter.Seq2[string, error], report ReportWriter) (stats Stats, err error) {
	filter := Filter{User: s.cfg.User, Cutoff: s.Cutoff()}

	defer func() {
		if ferr := report.Flush(); ferr != nil && err == nil {
			err = fjerrors.NewScanError(fjerrors.OpWriteOutput, s.cfg.Output, ferr)
		}
	}()

	header := Header{User: s.cfg.User, Since: s.cfg.Since, Cutoff: filter.Cutoff}
	if err := report.WriteHeader(header); err != nil {
		return stats, fjerrors.NewScanError(fjerrors.OpWriteOutput, s.cfg.Output, err)
	}

	for line, lerr := range lines {
		if lerr != nil {
			return stats, lerr
		}
		if err := ctx.Err(); err != nil {
			return stats, errors.Wrap(err, "scan interrupted")
		}

		stats.Lines++
		if IsComment(line) {
			stats.Comments++
			continue
		}

		rec, perr := ParseRecord(line)
		if perr != nil {
			var recErr *fjerrors.RecordError
			if errors.As(perr, &recErr) {
				recErr.Line = stats.Lines
			}
			return stats, errors.Wrapf(perr, "failed to parse %s", s.cfg.Input)
		}
		stats.Records++

		if !filter.Selects(rec) {
			continue
		}
		stats.Selected++
		s.logger.Debug("selected job", "job", rec.JobNumber, "name", rec.JobName, "failed", rec.Failed, "exit_status", rec.ExitStatus)

		if err := report.WriteRecord(rec); err != nil {
			return stats, fjerrors.NewScanError(fjerrors.OpWriteOutput, s.cfg.Output, err)
		}
	}

	return stats, nil
}

func (s *Scanner) openOutput() (io.Writer, func() error, error) {
	if s.cfg.ToStdout() {
		return s.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(s.cfg.Output)
	if err != nil {
		return nil, nil, fjerrors.NewScanError(fjerrors.OpOpenOutput, s.cfg.Output, err)
	}
	return f, f.Close, nil
}
