package commands

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/logging"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/util/arg"
)

type Command interface {
	// return the name of the command such as add
	Command() string
	// description
	Description() string
	// Validate if the required args are present
	ValidateArgs(args map[string]any) error
	// Execute the command with the loaded configuration
	Execute(cfg *config.Config, args map[string]any) error
}

// BoolFlagger is implemented by commands with flags that never take a value.
type BoolFlagger interface {
	BoolFlags() []string
}

// TextCommand is implemented by commands whose trailing words are free text.
// TextAfter is the number of positional arguments before the text; flags are
// not recognised after them.
type TextCommand interface {
	TextAfter() int
}

// Output streams; tests swap them.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

var (
	commandRegistry = make(map[string]Command)
	aliasRegistry   = make(map[string]string)
)

// globalBoolFlags are accepted by every command.
var globalBoolFlags = []string{"verbose", "v"}

func registerCommand(command Command, aliases ...string) {
	commandRegistry[command.Command()] = command
	for _, a := range aliases {
		aliasRegistry[a] = command.Command()
	}
}

func GetCommand(name string) (Command, bool) {
	if target, ok := aliasRegistry[name]; ok {
		name = target
	}
	cmd, ok := commandRegistry[name]
	return cmd, ok
}

func ListCommands() []string {
	keys := make([]string, 0, len(commandRegistry))
	for k := range commandRegistry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BoolFlags returns the value-less flags of command, including global ones.
func BoolFlags(command Command) []string {
	flags := append([]string(nil), globalBoolFlags...)
	if b, ok := command.(BoolFlagger); ok {
		flags = append(flags, b.BoolFlags()...)
	}
	return flags
}

// ParseArgs parses the arguments following the command name.
func ParseArgs(command Command, rawArgs []string) map[string]any {
	lead := -1
	if t, ok := command.(TextCommand); ok {
		lead = t.TextAfter()
	}
	return arg.ParseArgText(rawArgs, lead, BoolFlags(command)...)
}

// PrintUsage writes the command listing.
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: git-memo <command> [args]")
	fmt.Fprintln(w, "\nAvailable commands:")
	for _, cmdName := range ListCommands() {
		cmd, _ := GetCommand(cmdName)
		fmt.Fprintf(w, "  %-19s %s\n", cmdName, cmd.Description())
	}
	fmt.Fprintln(w, "\nGlobal flags:")
	fmt.Fprintln(w, "  --config <file>     configuration file")
	fmt.Fprintln(w, "  --backend <name>    exec or go-git")
	fmt.Fprintln(w, "  --verbose           debug logging")
}

type CommandRunner struct{}

// Run configures logging from the global flags and config, then validates and
// executes command. Errors are printed as a single line on stderr.
func (CommandRunner) Run(command Command, args map[string]any) error {
	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}
	logging.Setup(cfg.LogLevel)
	log.Debug().Str("command", command.Command()).Str("backend", cfg.Backend).Msg("Running command")

	if err := command.ValidateArgs(args); err != nil {
		fmt.Fprintf(stderr, "error: invalid arguments: %v\n", err)
		return err
	}
	if err := command.Execute(cfg, args); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}
	return nil
}
