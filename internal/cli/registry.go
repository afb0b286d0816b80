// Package cli holds the command registry shared by the pisle and devtool binaries.
package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Command is one subcommand of a binary
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry maps subcommand names to commands
type Registry struct {
	program  string
	commands map[string]Command
}

// NewRegistry creates an empty registry for the named program
func NewRegistry(program string) *Registry {
	return &Registry{
		program:  program,
		commands: make(map[string]Command),
	}
}

// Register adds cmd, replacing any command with the same name
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all registered commands sorted by name
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	slices.SortFunc(cmds, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return cmds
}

// PrintHelp writes usage and an aligned command table to w
func (r *Registry) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <command> [args...]\n", r.program)
	fmt.Fprintln(w, "\nAvailable Commands:")

	cmds := r.List()
	width := 0
	for _, cmd := range cmds {
		width = max(width, len(cmd.Name()))
	}
	for _, cmd := range cmds {
		fmt.Fprintf(w, "  %-*s  %s\n", width, cmd.Name(), cmd.Description())
	}
}

// Dispatch runs the command named by args[0] with the remaining arguments.
// Unknown or missing names print help to w and return an error.
func (r *Registry) Dispatch(args []string, w io.Writer) error {
	if len(args) == 0 {
		r.PrintHelp(w)
		return ErrNoCommand
	}

	cmd, ok := r.Get(args[0])
	if !ok {
		r.PrintHelp(w)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return cmd.Run(args[1:])
}
