package infrastructure

import "strings"

// shellSpecial lists characters that make an argument unsafe to paste into an
// interactive shell unquoted.
const shellSpecial = " \t\n\r'\"$`\\!*?[](){}|;<>&~#%"

// quoteArg renders one argument for display in a logged command line.
// exec.Command passes arguments directly to the process, so this quoting is
// cosmetic only; it keeps logged lines copy-pastable.
func quoteArg(s string) string {
	if s != "" && !strings.ContainsAny(s, shellSpecial) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// CommandLine renders a binary and its arguments as one shell-safe line for
// log headers
func CommandLine(binary string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteArg(binary))
	for _, arg := range args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}
