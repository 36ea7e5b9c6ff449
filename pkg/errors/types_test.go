package errors

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestOptionError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OptionError
		expected string
	}{
		{
			name:     "with option",
			err:      NewOptionError("--since", "invalid argument: 3x"),
			expected: "option --since: invalid argument: 3x",
		},
		{
			name:     "without option",
			err:      &OptionError{Message: "unknown flag: --bogus"},
			expected: "unknown flag: --bogus",
		},
		{
			name:     "from cause",
			err:      NewOptionErrorWithCause(errors.New("flag needs an argument: 'i' in -i")),
			expected: "flag needs an argument: 'i' in -i",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigError
		expected string
	}{
		{
			name:     "with field",
			err:      NewConfigError("format", "unsupported format \"xml\""),
			expected: "config error in format: unsupported format \"xml\"",
		},
		{
			name:     "without field",
			err:      NewConfigError("", "failed to unmarshal config"),
			expected: "config error: failed to unmarshal config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRecordError_Error(t *testing.T) {
	err := NewTooFewFieldsError(4, 13)
	want := "record: TooFewFields (got 4 fields, want at least 13)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.Line = 7
	want = "record on line 7: TooFewFields (got 4 fields, want at least 13)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestScanError_Unwrap(t *testing.T) {
	err := NewScanError(OpOpenInput, "/missing/accounting", fs.ErrNotExist)

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is() should find fs.ErrNotExist through ScanError")
	}
	if !strings.Contains(err.Error(), "/missing/accounting") {
		t.Errorf("Error() = %q, should mention the path", err.Error())
	}
}

func TestIsHelpers_WrappedChain(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		isOpt   bool
		isCfg   bool
		isRec   bool
		isScan  bool
		exitVal int
	}{
		{
			name:    "option",
			err:     errors.Wrap(NewOptionError("-s", "bad"), "parse flags"),
			isOpt:   true,
			exitVal: ExitOption,
		},
		{
			name:    "config",
			err:     errors.Wrap(NewConfigError("user", "cannot determine user"), "resolve"),
			isCfg:   true,
			exitVal: ExitConfig,
		},
		{
			name:    "record",
			err:     errors.Wrap(NewTooFewFieldsError(3, 13), "scan"),
			isRec:   true,
			exitVal: ExitScan,
		},
		{
			name:    "scan",
			err:     errors.Wrap(NewScanError(OpOpenOutput, "/ro/out", fs.ErrPermission), "run"),
			isScan:  true,
			exitVal: ExitScan,
		},
		{
			name:    "plain",
			err:     errors.New("boom"),
			exitVal: ExitScan,
		},
		{
			name:    "nil",
			err:     nil,
			exitVal: ExitOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOptionError(tt.err); got != tt.isOpt {
				t.Errorf("IsOptionError() = %v, want %v", got, tt.isOpt)
			}
			if got := IsConfigError(tt.err); got != tt.isCfg {
				t.Errorf("IsConfigError() = %v, want %v", got, tt.isCfg)
			}
			if got := IsRecordError(tt.err); got != tt.isRec {
				t.Errorf("IsRecordError() = %v, want %v", got, tt.isRec)
			}
			if got := IsScanError(tt.err); got != tt.isScan {
				t.Errorf("IsScanError() = %v, want %v", got, tt.isScan)
			}
			if got := ExitCode(tt.err); got != tt.exitVal {
				t.Errorf("ExitCode() = %d, want %d", got, tt.exitVal)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "nil",
			err:      nil,
			contains: nil,
		},
		{
			name:     "option error points at help",
			err:      NewOptionError("--since", "invalid argument"),
			contains: []string{"option --since", "failedjobs -h"},
		},
		{
			name:     "config error with cause",
			err:      NewConfigErrorWithCause("config", "cannot read config file", fs.ErrNotExist),
			contains: []string{"Configuration error in 'config'", "Underlying error"},
		},
		{
			name:     "record error",
			err:      errors.Wrap(&RecordError{Kind: TooFewFields, Line: 2, Fields: 5, Want: 13}, "scan"),
			contains: []string{"Malformed accounting record", "line 2", "at least 13"},
		},
		{
			name:     "input scan error",
			err:      NewScanError(OpOpenInput, "//common/accounting", fs.ErrNotExist),
			contains: []string{"//common/accounting", "SGE_ROOT"},
		},
		{
			name:     "output scan error",
			err:      NewScanError(OpOpenOutput, "/nope/out.txt", fs.ErrPermission),
			contains: []string{"--opfile"},
		},
		{
			name:     "plain error",
			err:      errors.New("something else"),
			contains: []string{"something else"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatUserError(tt.err)
			if tt.err == nil && got != "" {
				t.Errorf("FormatUserError(nil) = %q, want empty", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("FormatUserError() = %q, should contain %q", got, want)
				}
			}
		})
	}
}
