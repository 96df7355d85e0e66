// Package flagx lets independent loaders each parse their own subset of the
// command line without tripping over flags that belong to someone else.
package flagx

import (
	"strings"

	"github.com/spf13/pflag"
)

// FilterArgs keeps only the flags named in allowed (and their values) from
// args, preserving order. Both "-a value" and "--addr=value" forms are kept;
// a separate value is taken only if it does not itself look like a flag.
func FilterArgs(args []string, allowed []string) []string {
	names := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		names[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, known := names[name]; known {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, known := names[arg]; !known {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// ConfigPath extracts the config file path given as -c/--config.
// It returns "" when the flag is absent or malformed.
func ConfigPath(args []string) string {
	var path string

	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVarP(&path, "config", "c", "", "path to config file (.json or .yaml)")
	if err := fs.Parse(FilterArgs(args, []string{"-c", "--config"})); err != nil {
		return ""
	}
	return path
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
