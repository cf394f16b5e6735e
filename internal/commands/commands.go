package commands

import (
	"flag"
	"fmt"
	"sort"
	"strings"
)

const prefix = "cmd "

// Command is a subcommand with its own flags and a Run function.
type Command struct {
	Name    string
	Help    string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with
// Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. name is the first token after "cmd" (e.g.
// "form"); help is the one-line description shown by "cmd help".
func (r *Registry) Register(name, help string, fs *flag.FlagSet, run func() error) {
	r.cmds[name] = &Command{Name: name, Help: help, FlagSet: fs, Run: run}
}

// Parse interprets line as a console line. If line starts with "cmd "
// (case-sensitive), the rest is tokenized by spaces and returned with ok
// true. Otherwise nil, false.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs the subcommand in args[0] with args[1:] as flag arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand; try: cmd help")
	}
	name := args[0]
	if name == "help" {
		return fmt.Errorf("%s", r.helpText())
	}
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s; try: cmd help", name)
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Run()
}

// helpText lists registered commands alphabetically, one per line.
func (r *Registry) helpText() string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString("commands:")
	for _, name := range names {
		b.WriteString("\n  ")
		b.WriteString(name)
		if h := r.cmds[name].Help; h != "" {
			b.WriteString(" - ")
			b.WriteString(h)
		}
	}
	return b.String()
}
