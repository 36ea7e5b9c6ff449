package errors

import (
	"fmt"
	"strings"
)

// Process exit codes.
const (
	ExitOK     = 0
	ExitOption = 1
	ExitScan   = 2
	ExitConfig = 99
)

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsOptionError(err):
		return ExitOption
	case IsConfigError(err):
		return ExitConfig
	default:
		return ExitScan
	}
}

// FormatUserError returns a user-friendly error message with actionable guidance.
// It examines the error chain and provides context-appropriate help text.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	var optErr *OptionError
	if As(err, &optErr) {
		return formatOptionError(optErr)
	}

	var configErr *ConfigError
	if As(err, &configErr) {
		return formatConfigError(configErr)
	}

	var recErr *RecordError
	if As(err, &recErr) {
		return formatRecordError(recErr)
	}

	var scanErr *ScanError
	if As(err, &scanErr) {
		return formatScanError(scanErr)
	}

	return err.Error()
}

func formatOptionError(err *OptionError) string {
	var b strings.Builder

	b.WriteString(err.Error())
	b.WriteString("\n\nFor help use: failedjobs -h\n")

	return b.String()
}

// formatConfigError formats a ConfigError with actionable guidance.
func formatConfigError(err *ConfigError) string {
	var b strings.Builder

	if err.Field != "" {
		fmt.Fprintf(&b, "Configuration error in '%s': %s\n", err.Field, err.Message)
	} else {
		fmt.Fprintf(&b, "Configuration error: %s\n", err.Message)
	}

	b.WriteString("\nTo fix this:\n")
	b.WriteString("  • Check your config file: ~/.config/failedjobs/config.toml\n")
	b.WriteString("  • Check FAILEDJOBS_* environment variables\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

func formatRecordError(err *RecordError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Malformed accounting record: %s\n", err.Error())

	if err.Kind == TooFewFields {
		b.WriteString("\nThe accounting file is expected to be colon-delimited with at least ")
		fmt.Fprintf(&b, "%d fields per job.\n", err.Want)
		b.WriteString("  • Check that --ipfile points at an SGE accounting file\n")
	}

	return b.String()
}

func formatScanError(err *ScanError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", err.Error())

	switch err.Operation {
	case OpOpenInput, OpReadInput:
		b.WriteString("\nTo fix this:\n")
		b.WriteString("  • Pass the accounting file with -i/--ipfile\n")
		b.WriteString("  • Or set SGE_ROOT and SGE_CELL\n")
	case OpOpenOutput, OpWriteOutput:
		b.WriteString("\nTo fix this:\n")
		b.WriteString("  • Check that the -o/--opfile directory exists and is writable\n")
	}

	return b.String()
}
