package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/util/arg"
)

// outputFormat resolves --json / --format against the configured default.
func outputFormat(args map[string]any, fallback string) (string, error) {
	if arg.Bool(args, "json") {
		return config.OutputJSON, nil
	}
	if _, ok := args["format"]; !ok {
		return fallback, nil
	}
	format, ok := arg.String(args, "format")
	if !ok {
		return "", fmt.Errorf("--format requires a value (text, json, or yaml)")
	}
	switch format {
	case config.OutputText, config.OutputJSON, config.OutputYAML:
		return format, nil
	}
	return "", fmt.Errorf("unknown format %q (must be text, json, or yaml)", format)
}

// render writes v as JSON or YAML, or calls text for the plain format.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

// readMessage joins the message words, or reads stdin for a lone "-".
// One trailing newline from stdin is dropped.
func readMessage(words []string) (string, error) {
	if len(words) == 1 && words[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read message from stdin: %w", err)
		}
		msg := strings.TrimSuffix(string(data), "\n")
		msg = strings.TrimSuffix(msg, "\r")
		if msg == "" {
			return "", fmt.Errorf("empty message on stdin")
		}
		return msg, nil
	}
	return strings.Join(words, " "), nil
}

// requirePositional checks for at least n positional arguments.
func requirePositional(args map[string]any, n int, names ...string) error {
	if got := len(arg.Strings(args)); got < n {
		return fmt.Errorf("missing required argument: %s", names[got])
	}
	return nil
}
