package arg

import "strings"

// Positional is the key under which non-flag arguments are collected.
const Positional = "args"

// ParseArg parses the raw arguments into a map so that it's easy to work with.
//
// Flags may be written -k, --k, --k=v or --k v. Flags named in boolFlags never
// consume the next argument. A lone "-" is positional (stdin), and everything
// after "--" is positional.
func ParseArg(rawArgs []string, boolFlags ...string) map[string]any {
	return ParseArgText(rawArgs, -1, boolFlags...)
}

// ParseArgText is ParseArg for commands whose trailing words are free text:
// once lead positional arguments have been seen, every remaining argument is
// positional, even when it starts with '-'. A negative lead disables this.
func ParseArgText(rawArgs []string, lead int, boolFlags ...string) map[string]any {
	isBool := make(map[string]bool, len(boolFlags))
	for _, f := range boolFlags {
		isBool[f] = true
	}

	args := make(map[string]any)
	var positional []string
	for i := 0; i < len(rawArgs); i++ {
		arg := rawArgs[i]

		if lead >= 0 && len(positional) == lead {
			rest := rawArgs[i:]
			if rest[0] == "--" {
				rest = rest[1:]
			}
			positional = append(positional, rest...)
			break
		}
		if arg == "--" {
			positional = append(positional, rawArgs[i+1:]...)
			break
		}
		if !isFlag(arg) {
			positional = append(positional, arg)
			continue
		}

		key := strings.TrimLeft(arg, "-")
		if k, v, ok := strings.Cut(key, "="); ok {
			args[k] = v
			continue
		}

		// Check for value
		if !isBool[key] && i+1 < len(rawArgs) && !isFlag(rawArgs[i+1]) && rawArgs[i+1] != "--" {
			args[key] = rawArgs[i+1]
			i++
		} else {
			args[key] = true
		}
	}

	if len(positional) > 0 {
		args[Positional] = positional
	}
	return args
}

func isFlag(s string) bool {
	return len(s) > 1 && s[0] == '-'
}

// Strings returns the positional arguments.
func Strings(args map[string]any) []string {
	list, _ := args[Positional].([]string)
	return list
}

// Bool reports whether a boolean flag is set. A flag given a value is true
// unless the value is "false".
func Bool(args map[string]any, key string) bool {
	switch v := args[key].(type) {
	case bool:
		return v
	case string:
		return v != "false"
	default:
		return false
	}
}

// String returns a string flag, with ok false when absent or given without a value.
func String(args map[string]any, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok
}
