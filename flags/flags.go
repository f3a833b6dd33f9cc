package flags

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	Format    = "format"
	Label     = "label"
	LogFormat = "log-format"
	LogLevel  = "log-level"
	LogSource = "log-source"
	NoColor   = "no-color"
	Total     = "total"
	Width     = "width"
)

// Register adds the flags shared by every nyancat command.
func Register(flags *flag.FlagSet) {
	// Rendering
	flags.Int(Total, 0, "number of expected examples (0 = collect the whole input first)")
	flags.Int(Width, 0, "terminal width in columns (0 = query the terminal)")
	flags.Bool(NoColor, false, "disable colors")
	flags.String(Label, "tests", "what is being run, shown in the banner")

	// Logging
	flags.String(LogFormat, "text", "log format (json, text)")
	flags.String(LogLevel, "WARN", "minimum log level")
	flags.Bool(LogSource, false, "add source code location to logs")
}

// Bind makes every flag of the set available through viper, with NYANCAT_*
// environment variables as fallback.
func Bind(flags *flag.FlagSet) error {
	viper.SetEnvPrefix("nyancat")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := viper.BindPFlags(flags); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	return nil
}
