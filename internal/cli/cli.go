// Package cli parses the commands' shared invocation shape: positional
// arguments that may appear before, between, or after flags.
package cli

import "flag"

// Parse parses args with fs, collecting up to max positional arguments and
// re-parsing whatever follows each one as flags, so `cmd TICKER -s 5` and
// `cmd -s 5 TICKER` mean the same thing. Positionals beyond max are left in
// fs.Args().
func Parse(fs *flag.FlagSet, args []string, max int) []string {
	fs.Parse(args)
	var positionals []string
	for fs.NArg() > 0 && len(positionals) < max {
		positionals = append(positionals, fs.Arg(0))
		fs.Parse(fs.Args()[1:])
	}
	return positionals
}
