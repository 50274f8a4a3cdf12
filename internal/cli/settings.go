package cli

import (
	"github.com/spf13/cobra"

	"github.com/temirov/collect/internal/config"
	"github.com/temirov/collect/internal/utils"
)

// commandFlagValues stores the raw flag values of the files and tree commands.
type commandFlagValues struct {
	output      string
	skipFolders []string
	skipFiles   []string
	copyOutput  bool
	tokens      bool
	model       string
}

// filesSettings is the effective configuration of one files run.
type filesSettings struct {
	root          string
	output        string
	skipFolders   []string
	skipFiles     []string
	outputOptions outputOptions
}

// treeSettings is the effective configuration of one tree run.
type treeSettings struct {
	root          string
	output        string
	skipFolders   []string
	outputOptions outputOptions
}

// resolveFilesSettings combines positional arguments, flags and configuration.
// Flags given on the command line win over configuration, which wins over built-in defaults.
func resolveFilesSettings(command *cobra.Command, arguments []string, flagValues commandFlagValues, configuration config.FilesConfiguration) filesSettings {
	flags := command.Flags()
	settings := filesSettings{
		root:          firstNonEmpty(firstArgument(arguments), configuration.Root, defaultRootPath),
		output:        firstNonEmpty(flagValues.output, configuration.Output, defaultFilesOutputPath),
		skipFolders:   configuration.SkipFolders,
		skipFiles:     configuration.SkipFiles,
		outputOptions: resolveOutputOptions(command, flagValues, configuration.Copy, configuration.Tokens),
	}
	if flags.Changed(skipFolderFlagName) {
		settings.skipFolders = utils.DeduplicateNames(flagValues.skipFolders)
	}
	if flags.Changed(skipFileFlagName) {
		settings.skipFiles = utils.DeduplicateNames(flagValues.skipFiles)
	}
	return settings
}

// resolveTreeSettings combines positional arguments, flags and configuration.
// A nil skip list is kept nil so that the renderer applies its default folders.
func resolveTreeSettings(command *cobra.Command, arguments []string, flagValues commandFlagValues, configuration config.TreeConfiguration) treeSettings {
	settings := treeSettings{
		root:          firstNonEmpty(firstArgument(arguments), configuration.Root, defaultRootPath),
		output:        firstNonEmpty(flagValues.output, configuration.Output, defaultTreeOutputPath),
		skipFolders:   configuration.SkipFolders,
		outputOptions: resolveOutputOptions(command, flagValues, configuration.Copy, configuration.Tokens),
	}
	if command.Flags().Changed(skipFolderFlagName) {
		settings.skipFolders = utils.DeduplicateNames(flagValues.skipFolders)
	}
	return settings
}

func resolveOutputOptions(command *cobra.Command, flagValues commandFlagValues, configuredCopy *bool, tokens config.TokenConfiguration) outputOptions {
	flags := command.Flags()
	options := outputOptions{
		copyOutput: flagValues.copyOutput,
		tokens:     flagValues.tokens,
		model:      flagValues.model,
	}
	if !flags.Changed(copyFlagName) && configuredCopy != nil {
		options.copyOutput = *configuredCopy
	}
	if !flags.Changed(tokensFlagName) && tokens.Enabled != nil {
		options.tokens = *tokens.Enabled
	}
	if !flags.Changed(modelFlagName) && tokens.Model != "" {
		options.model = tokens.Model
	}
	return options
}

func firstArgument(arguments []string) string {
	if len(arguments) == 0 {
		return ""
	}
	return arguments[0]
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
