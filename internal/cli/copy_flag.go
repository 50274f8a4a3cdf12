package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	copyFlagName                = "copy"
	copyFlagTypeName            = "copy"
	copyFlagDescription         = "copy the written output file to the clipboard"
	invalidCopyFlagValueMessage = "invalid copy flag value '%s'"
)

var (
	copyFlagLiterals = map[string]bool{
		"":      true,
		"true":  true,
		"t":     true,
		"1":     true,
		"yes":   true,
		"y":     true,
		"false": false,
		"f":     false,
		"0":     false,
		"no":    false,
		"n":     false,
	}
	copyFlagCommandNames = map[string]struct{}{
		"files": {},
		"f":     {},
		"tree":  {},
		"t":     {},
	}
)

func isCopyFlagCommand(argument string) bool {
	_, known := copyFlagCommandNames[strings.ToLower(strings.TrimSpace(argument))]
	return known
}

func interpretCopyFlagLiteral(input string) (bool, bool) {
	booleanValue, matches := copyFlagLiterals[strings.ToLower(strings.TrimSpace(input))]
	return booleanValue, matches
}

// copyFlagValue is a boolean flag that also accepts yes/no style literals.
type copyFlagValue struct {
	target *bool
}

func (value *copyFlagValue) Set(input string) error {
	if value == nil || value.target == nil {
		return fmt.Errorf(invalidCopyFlagValueMessage, input)
	}
	booleanValue, ok := interpretCopyFlagLiteral(input)
	if !ok {
		return fmt.Errorf(invalidCopyFlagValueMessage, input)
	}
	*value.target = booleanValue
	return nil
}

func (value *copyFlagValue) String() string {
	if value == nil || value.target == nil || !*value.target {
		return "false"
	}
	return "true"
}

func (value *copyFlagValue) Type() string {
	return copyFlagTypeName
}

func registerCopyFlag(flagSet *pflag.FlagSet, target *bool) {
	if flagSet == nil || target == nil {
		return
	}
	*target = false
	flagSet.Var(&copyFlagValue{target: target}, copyFlagName, copyFlagDescription)
	if lookup := flagSet.Lookup(copyFlagName); lookup != nil {
		lookup.NoOptDefVal = "true"
	}
}

// normalizeCopyFlagArguments rewrites "--copy <literal>" into "--copy=<literal>" so that pflag,
// which never consumes a separate value for flags with NoOptDefVal, sees the literal.
// A following argument that is not a boolean literal stays positional.
func normalizeCopyFlagArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if current != "--"+copyFlagName {
			normalized = append(normalized, current)
			continue
		}
		nextIndex := index + 1
		if nextIndex >= len(arguments) || strings.HasPrefix(arguments[nextIndex], "-") || isCopyFlagCommand(arguments[nextIndex]) {
			normalized = append(normalized, fmt.Sprintf("--%s=true", copyFlagName))
			continue
		}
		if booleanValue, ok := interpretCopyFlagLiteral(arguments[nextIndex]); ok && arguments[nextIndex] != "" {
			normalized = append(normalized, fmt.Sprintf("--%s=%t", copyFlagName, booleanValue))
			index = nextIndex
			continue
		}
		normalized = append(normalized, fmt.Sprintf("--%s=true", copyFlagName))
	}
	return normalized
}
