package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/spf13/pflag"
)

func TestRegisterCopyFlagParsesValues(t *testing.T) {
	testCases := []struct {
		name        string
		arguments   []string
		expected    bool
		expectError bool
	}{
		{
			name:      "defaults_to_false",
			arguments: []string{},
			expected:  false,
		},
		{
			name:      "sets_true_without_value",
			arguments: []string{"--copy"},
			expected:  true,
		},
		{
			name:      "sets_false_with_equals",
			arguments: []string{"--copy=false"},
			expected:  false,
		},
		{
			name:      "sets_false_with_no",
			arguments: []string{"--copy", "no"},
			expected:  false,
		},
		{
			name:        "rejects_invalid_text",
			arguments:   []string{"--copy=maybe"},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			var flagValue bool
			flagSet := pflag.NewFlagSet("copy-flag", pflag.ContinueOnError)
			flagSet.SetOutput(io.Discard)
			registerCopyFlag(flagSet, &flagValue)
			parseErr := flagSet.Parse(normalizeCopyFlagArguments(testCase.arguments))
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected value %t, got %t", testCase.expected, flagValue)
			}
		})
	}
}

func TestNormalizeCopyFlagArguments(t *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{
			name:      "literal_is_folded",
			arguments: []string{"files", "--copy", "yes", "."},
			expected:  []string{"files", "--copy=true", "."},
		},
		{
			name:      "path_stays_positional",
			arguments: []string{"files", "--copy", "src"},
			expected:  []string{"files", "--copy=true", "src"},
		},
		{
			name:      "trailing_flag",
			arguments: []string{"tree", "--copy"},
			expected:  []string{"tree", "--copy=true"},
		},
		{
			name:      "followed_by_flag",
			arguments: []string{"--copy", "-o", "out.txt"},
			expected:  []string{"--copy=true", "-o", "out.txt"},
		},
		{
			name:      "after_terminator_untouched",
			arguments: []string{"files", "--", "--copy", "no"},
			expected:  []string{"files", "--", "--copy", "no"},
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			normalized := normalizeCopyFlagArguments(testCase.arguments)
			if !reflect.DeepEqual(normalized, testCase.expected) {
				t.Fatalf("unexpected arguments %v, want %v", normalized, testCase.expected)
			}
		})
	}
}
