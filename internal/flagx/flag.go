// Package flagx lets each configuration layer parse only the command-line
// flags it owns, so the JSON overlay and the per-binary flag sets can share
// os.Args.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args that names one of the allowed
// flags, together with the flag values.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -d postgres://...
//  2. Flag and value combined with '=':      -db=host-security.db
//  3. Boolean switches without a value:      -dry-run
//
// A separate value is taken from the next argument unless that argument
// starts with "-" or the flag is listed in switches. Switches never consume
// the next argument, so "-upload stray" keeps only "-upload".
//
// Parameters:
//
//	args         the command-line arguments (usually os.Args[1:])
//	allowedFlags flags that take a value (e.g. []string{"-a", "-d"})
//	switches     boolean flags (e.g. "-migrate", "-dry-run")
//
// Returns:
//
//	A new slice with the allowed flags and their values, in input order.
//	Unknown flags and positional arguments are dropped. The result is never
//	nil.
func FilterArgs(args []string, allowedFlags []string, switches ...string) []string {
	allowed := make(map[string]bool, len(allowedFlags)+len(switches))
	for _, f := range allowedFlags {
		allowed[f] = false
	}
	for _, f := range switches {
		allowed[f] = true
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		isSwitch, ok := allowed[arg]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)
		if isSwitch {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// JsonConfigFlags returns the path of the JSON config file given on the
// command line with -c or -config.
//
// Both binaries call it before their own flag parsing so the file can be
// overlaid onto the defaults first and the flags applied last:
//
//	cfg.LoadDefaults()
//	parseJson(cfg)  // uses JsonConfigFlags()
//	parseFlags(cfg)
//
// Returns "" when neither flag is present. Other arguments are ignored and
// parse errors are swallowed; the per-binary flag set reports them.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
