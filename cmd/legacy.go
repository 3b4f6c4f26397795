package cmd

import "strings"

// legacyArgs rewrites the original positional form
//
//	[flags] <file> -max <col>
//	[flags] <file> -sort <col> [desc]
//
// into subcommand form. Leading persistent flags are kept in front of the
// subcommand; the file and column follow "--" so dash-prefixed names are not
// read as flags. Any other operation after the file collapses to the bare
// file, which prints the no-operation message.
func legacyArgs(args []string) []string {
	var lead []string
	i := 0
	for i < len(args) && strings.HasPrefix(args[i], "-") && args[i] != "--" {
		lead = append(lead, args[i])
		if args[i] == "--config" && i+1 < len(args) {
			lead = append(lead, args[i+1])
			i++
		}
		i++
	}
	rest := args[i:]
	if len(rest) == 0 || rest[0] == "--" || isSubcommand(rest[0]) {
		return args
	}
	file := rest[0]
	if len(rest) >= 3 {
		switch rest[1] {
		case "-max":
			return append(lead, "max", "--", file, rest[2])
		case "-sort":
			out := append(lead, "sort", "--", file, rest[2])
			if len(rest) >= 4 && rest[3] == "desc" {
				out = append(out, "desc")
			}
			return out
		}
	}
	return append(lead, file)
}

func isSubcommand(name string) bool {
	if name == "help" || name == "completion" {
		return true
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}
