package config

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	fjerrors "thoreinstein.com/failedjobs/pkg/errors"
)

// Flag names shared between the command line and the resolver.
const (
	FlagInput   = "ipfile"
	FlagOutput  = "opfile"
	FlagUser    = "user"
	FlagSince   = "since"
	FlagFormat  = "format"
	FlagVerbose = "verbose"
)

// EnvPrefix prefixes the environment variables that override config keys,
// e.g. FAILEDJOBS_USER.
const EnvPrefix = "FAILEDJOBS"

// Report formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

// ValidFormats is the list of supported report formats.
var ValidFormats = []string{FormatText, FormatTable, FormatJSON}

// Config is the resolved, immutable run configuration.
type Config struct {
	Input   string `mapstructure:"ipfile" toml:"ipfile"`           // Accounting file to scan
	Output  string `mapstructure:"opfile" toml:"opfile,omitempty"` // Empty means standard output
	User    string `mapstructure:"user" toml:"user"`               // Job owner to report on
	Since   string `mapstructure:"since" toml:"since,omitempty"`   // Look-back window as typed, e.g. "3d"
	Format  string `mapstructure:"format" toml:"format"`
	Verbose bool   `mapstructure:"verbose" toml:"verbose"`

	// Window is derived from Since.
	Window int64 `mapstructure:"-" toml:"window_seconds"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-" toml:"-"`
}

// Options carries the inputs to Resolve.
type Options struct {
	Flags      *pflag.FlagSet // Parsed command-line flags, may be nil
	ConfigFile string         // Explicit config file; empty searches ~/.config/failedjobs
	Warnings   io.Writer      // Destination for resolution warnings, defaults to os.Stderr
}

// AddFlags registers the scan flags on fs. Values are read back by Resolve.
func AddFlags(fs *pflag.FlagSet) {
	fs.BoolP(FlagVerbose, "v", false, "Verbose Output")
	fs.StringP(FlagInput, "i", "", "SGE Accounting `IFILE` (default $SGE_ROOT/$SGE_CELL/common/accounting)")
	fs.StringP(FlagOutput, "o", "", "Output `OFILE` (default standard output)")
	fs.StringP(FlagUser, "u", "", "Job `USER` (default $USER)")
	fs.VarP(new(SinceValue), FlagSince, "s", "Go back in history until `SINCE`, N[m|h|d]")
	fs.StringP(FlagFormat, "f", "", "Report `FORMAT`: text, table or json (default text)")
}

// Resolve builds a Config from defaults, the optional config file,
// FAILEDJOBS_* environment variables and explicit flags, in increasing order
// of precedence. It uses a private viper instance so no state survives the call.
func Resolve(opts Options) (*Config, error) {
	warn := opts.Warnings
	if warn == nil {
		warn = os.Stderr
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, opts.Flags); err != nil {
		return nil, fjerrors.NewConfigErrorWithCause("flags", "failed to bind flags", err)
	}

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fjerrors.NewConfigErrorWithCause("", "failed to unmarshal config", err)
	}
	cfg.Source = v.ConfigFileUsed()

	if cfg.User == "" {
		owner, err := currentUser()
		if err != nil {
			return nil, fjerrors.NewConfigErrorWithCause(FlagUser, "cannot determine the current user", err)
		}
		cfg.User = owner
	}

	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	window, ok := WindowSeconds(cfg.Since)
	if !ok {
		fmt.Fprintf(warn, "Warning: Unexpected pattern %q for --since, using a window of 0 seconds\n", cfg.Since)
	}
	cfg.Window = window

	return cfg, nil
}

// DefaultInputPath returns <SGE_ROOT>/<SGE_CELL>/common/accounting. Unset
// variables substitute the empty string.
func DefaultInputPath() string {
	return fmt.Sprintf("%s/%s/common/accounting", os.Getenv("SGE_ROOT"), os.Getenv("SGE_CELL"))
}

// ValidateFormat validates that a report format is supported.
func ValidateFormat(format string) error {
	for _, valid := range ValidFormats {
		if format == valid {
			return nil
		}
	}
	return errors.Newf("invalid format %q: must be one of: %s", format, strings.Join(ValidFormats, ", "))
}

// Validate validates the configuration and returns any validation errors.
func (c *Config) Validate() error {
	if err := ValidateFormat(c.Format); err != nil {
		return fjerrors.NewConfigErrorWithCause(FlagFormat, "unsupported report format", err)
	}
	return nil
}

// ToStdout reports whether the report goes to standard output.
func (c *Config) ToStdout() bool {
	return c.Output == ""
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault(FlagInput, DefaultInputPath())
	v.SetDefault(FlagOutput, "")
	v.SetDefault(FlagUser, os.Getenv("USER"))
	v.SetDefault(FlagSince, "")
	v.SetDefault(FlagFormat, FormatText)
	v.SetDefault(FlagVerbose, false)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	for _, name := range []string{FlagInput, FlagOutput, FlagUser, FlagSince, FlagFormat, FlagVerbose} {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(name, flag); err != nil {
			return errors.Wrapf(err, "bind --%s", name)
		}
	}
	return nil
}

// readConfigFile reads an explicit config file, or searches the default
// location. A missing default file is not an error.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fjerrors.NewConfigErrorWithCause("config", fmt.Sprintf("cannot read config file %s", path), err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(filepath.Join(home, ".config", "failedjobs"))
	v.SetConfigName("config")
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fjerrors.NewConfigErrorWithCause("config", "cannot parse config file", err)
	}
	return nil
}

// currentUser returns the owner of the running process.
func currentUser() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", errors.Wrap(err, "failed to look up current user")
	}
	return u.Username, nil
}
