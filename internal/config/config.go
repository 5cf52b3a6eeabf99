// Package config parses process-level flags. It is the one deliberately
// standard-library ambient concern in this repo: no direct CLI flag
// library appears anywhere in the retrieved example pack (spf13/pflag
// and spf13/cobra only show up as transitive dependencies of an
// unrelated terminal-UI library), so stdlib flag is used here rather
// than reaching for an unverified dependency.
package config

import "flag"

// Config holds every address and path the process needs at startup.
type Config struct {
	WSAddr    string // tandem websocket listener, e.g. ":9091"
	HTTPAddr  string // static asset server listener, e.g. ":9090"
	AssetsDir string // directory containing the "files/" tree
	LogLevel  string // "debug", "info", "warn", "error"
}

// Parse reads Config fields from args (typically os.Args[1:]).
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("tandemd", flag.ContinueOnError)
	cfg := Config{}

	fs.StringVar(&cfg.WSAddr, "ws-addr", ":9091", "address for the tandem websocket listener")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", ":9090", "address for the static asset server")
	fs.StringVar(&cfg.AssetsDir, "assets-dir", ".", "directory containing the static files/ tree")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
