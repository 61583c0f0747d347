package repl

import "strings"

// Command is one parsed input line
type Command struct {
	Name string // lower-cased first token
	Arg  string // trimmed remainder, verbatim otherwise
}

// ParseLine splits a line at the first space. ok is false for blank lines.
func ParseLine(line string) (cmd Command, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, false
	}

	name, arg, _ := strings.Cut(line, " ")
	return Command{
		Name: strings.ToLower(name),
		Arg:  strings.TrimSpace(arg),
	}, true
}

// splitLemma separates "<name> <statement>"
func splitLemma(arg string) (name, statement string, ok bool) {
	name, statement, ok = strings.Cut(arg, " ")
	statement = strings.TrimSpace(statement)
	return name, statement, ok && name != "" && statement != ""
}
