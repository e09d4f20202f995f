package cmd

import (
	"io"

	"github.com/spf13/pflag"
)

// Options holds the parsed command line. Zero values mean "use the config".
type Options struct {
	ConfigPath  string
	BaseZIndex  int
	Debug       bool
	Serve       string
	HostKey     string
	Metrics     string
	ShowVersion bool
	ShowHelp    bool

	// set records which flags were given explicitly.
	set map[string]bool
}

// Changed reports whether the flag was given on the command line.
func (o Options) Changed(name string) bool {
	return o.set[name]
}

// NewFlagSet defines the flags and binds them to o.
func NewFlagSet(o *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("dialogstack", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	// Configuration
	fs.StringVarP(&o.ConfigPath, "config", "c", "", "Config file to use instead of the default")
	fs.IntVar(&o.BaseZIndex, "base-z", 0, "First z-index handed out by the dialog store")

	// Modifiers
	fs.BoolVarP(&o.Debug, "debug", "x", false, "Debug output")

	// Serving
	fs.StringVar(&o.Serve, "serve", "", "Serve the demo over SSH on this address")
	fs.StringVar(&o.HostKey, "host-key", "", "SSH host key path")
	fs.StringVar(&o.Metrics, "metrics", "", "Serve Prometheus metrics on this address")

	// Info
	fs.BoolVarP(&o.ShowVersion, "version", "V", false, "Show version")
	fs.BoolVarP(&o.ShowHelp, "help", "h", false, "Show help")
	return fs
}

// Parse parses args, which should not include the program name.
func Parse(args []string) (Options, error) {
	var o Options
	fs := NewFlagSet(&o)
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.set = make(map[string]bool)
	fs.Visit(func(f *pflag.Flag) {
		o.set[f.Name] = true
	})
	return o, nil
}
