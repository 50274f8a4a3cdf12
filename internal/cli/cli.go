// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/collect/internal/commands"
	"github.com/temirov/collect/internal/config"
	"github.com/temirov/collect/internal/services/clipboard"
	"github.com/temirov/collect/internal/tokenizer"
	"github.com/temirov/collect/internal/types"
	"github.com/temirov/collect/internal/utils"
)

const (
	configFlagName     = "config"
	verboseFlagName    = "verbose"
	outputFlagName     = "output"
	outputFlagShort    = "o"
	skipFolderFlagName = "skip-folder"
	skipFileFlagName   = "skip-file"
	tokensFlagName     = "tokens"
	modelFlagName      = "model"
	globalFlagName     = "global"
	forceFlagName      = "force"

	defaultRootPath        = "."
	defaultFilesOutputPath = "all_files.txt"
	defaultTreeOutputPath  = "structure.txt"

	rootUse              = "collect"
	rootShortDescription = "collect command line interface"
	rootLongDescription  = `collect gathers a project into plain text files.
The files command concatenates every file under a directory into one output file,
each block prefixed with a "// relative/path" marker. The tree command writes an
indented listing of the directory structure.`
	versionTemplate = "collect version: {{.Version}}\n"

	filesUse              = "files [root]"
	filesAlias            = "f"
	filesShortDescription = "concatenate file contents into one file (" + filesAlias + ")"
	filesLongDescription  = `Write the content of every file under root into a single output file.
Folders named with --skip-folder are never entered and files named with --skip-file are never written.
The output file itself is always skipped. Files that cannot be read as UTF-8 text are
recorded with a read error marker instead of content.`
	filesUsageExample = `  # Collect the current directory into all_files.txt
  collect files

  # Collect a web project without dependencies or lock files
  collect files ./web -o web.txt --skip-folder node_modules --skip-folder .next --skip-file package-lock.json`

	treeUse              = "tree [root]"
	treeAlias            = "t"
	treeShortDescription = "render the directory tree into a file (" + treeAlias + ")"
	treeLongDescription  = `Write an indented listing of the directories and files under root.
Without --skip-folder the .next and node_modules folders are skipped.`
	treeUsageExample = `  # Render the current directory into structure.txt
  collect tree

  # Render src while skipping vendor
  collect tree src -o src_tree.txt --skip-folder vendor`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default ` + utils.ConfigFileName + ` into the working directory,
or into ~/` + utils.GlobalConfigDirectoryName + ` with --global.`

	configFlagDescription     = "configuration file to use instead of ./" + utils.ConfigFileName
	verboseFlagDescription    = "enable debug logging"
	outputFlagDescription     = "output file path"
	skipFolderFlagDescription = "folder name to skip (repeatable)"
	skipFileFlagDescription   = "file name to skip (repeatable)"
	tokensFlagDescription     = "log an estimated token count of the output"
	modelFlagDescription      = "tokenizer model to use for token counting"
	globalFlagDescription     = "write the global configuration"
	forceFlagDescription      = "overwrite an existing configuration file"

	filesWrittenMessage     = "files collected"
	treeWrittenMessage      = "tree written"
	tokensCountedMessage    = "estimated tokens"
	tokensSkippedMessage    = "output is not valid UTF-8 text, tokens not counted"
	clipboardCopiedMessage  = "output copied to clipboard"
	configurationWrittenMsg = "configuration written"

	loggerRebuildErrorFormat = "rebuild logger: %w"
	tokenCountErrorFormat    = "count tokens in %s: %w"
)

// Dependencies holds the services used by the commands. Zero values select the real services.
type Dependencies struct {
	Logger           *zap.Logger
	Copier           clipboard.Copier
	NewCounter       func(tokenizer.Config) (tokenizer.Counter, string, error)
	WorkingDirectory string
	HomeDirectory    string
}

// application carries dependencies and persistent flag values across commands.
type application struct {
	dependencies      Dependencies
	configurationPath string
	verbose           bool
}

// outputOptions controls what happens with an output file after it is written.
type outputOptions struct {
	copyOutput bool
	tokens     bool
	model      string
}

// Execute runs the collect application.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger})
	rootCommand.SetArgs(normalizeCopyFlagArguments(os.Args[1:]))
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Copier == nil {
		dependencies.Copier = clipboard.NewService()
	}
	if dependencies.NewCounter == nil {
		dependencies.NewCounter = tokenizer.NewCounter
	}
	dependencies.Logger = utils.LoggerOrNop(dependencies.Logger)
	app := &application{dependencies: dependencies}

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Version:      utils.GetApplicationVersion(),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if !app.verbose {
				return nil
			}
			verboseLogger, loggerError := utils.NewApplicationLogger(true)
			if loggerError != nil {
				return fmt.Errorf(loggerRebuildErrorFormat, loggerError)
			}
			app.dependencies.Logger = verboseLogger
			return nil
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.PersistentFlags().StringVar(&app.configurationPath, configFlagName, "", configFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&app.verbose, verboseFlagName, false, verboseFlagDescription)
	rootCommand.AddCommand(
		app.createFilesCommand(),
		app.createTreeCommand(),
		app.createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createFilesCommand returns the files subcommand.
func (app *application) createFilesCommand() *cobra.Command {
	var flagValues commandFlagValues

	filesCommand := &cobra.Command{
		Use:     filesUse,
		Aliases: []string{filesAlias},
		Short:   filesShortDescription,
		Long:    filesLongDescription,
		Example: filesUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, loadError := app.loadConfiguration()
			if loadError != nil {
				return loadError
			}
			settings := resolveFilesSettings(command, arguments, flagValues, configuration.Files)
			return app.runFiles(settings)
		},
	}

	addOutputFlags(filesCommand, &flagValues)
	filesCommand.Flags().StringArrayVar(&flagValues.skipFiles, skipFileFlagName, nil, skipFileFlagDescription)
	return filesCommand
}

// createTreeCommand returns the tree subcommand.
func (app *application) createTreeCommand() *cobra.Command {
	var flagValues commandFlagValues

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, loadError := app.loadConfiguration()
			if loadError != nil {
				return loadError
			}
			settings := resolveTreeSettings(command, arguments, flagValues, configuration.Tree)
			return app.runTree(settings)
		},
	}

	addOutputFlags(treeCommand, &flagValues)
	return treeCommand
}

// createInitCommand returns the init subcommand.
func (app *application) createInitCommand() *cobra.Command {
	var globalTarget bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: app.dependencies.WorkingDirectory,
				HomeDirectory:    app.dependencies.HomeDirectory,
			})
			if initError != nil {
				return initError
			}
			app.dependencies.Logger.Info(configurationWrittenMsg, zap.String("path", destinationPath))
			fmt.Fprintln(command.OutOrStdout(), destinationPath)
			return nil
		},
	}

	initCommand.Flags().BoolVar(&globalTarget, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// addOutputFlags registers the flags shared by the files and tree commands.
func addOutputFlags(command *cobra.Command, flagValues *commandFlagValues) {
	command.Flags().StringVarP(&flagValues.output, outputFlagName, outputFlagShort, "", outputFlagDescription)
	command.Flags().StringArrayVar(&flagValues.skipFolders, skipFolderFlagName, nil, skipFolderFlagDescription)
	registerCopyFlag(command.Flags(), &flagValues.copyOutput)
	command.Flags().BoolVar(&flagValues.tokens, tokensFlagName, false, tokensFlagDescription)
	command.Flags().StringVar(&flagValues.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
}

func (app *application) loadConfiguration() (config.ApplicationConfiguration, error) {
	return config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: app.dependencies.WorkingDirectory,
		ExplicitFilePath: app.configurationPath,
		HomeDirectory:    app.dependencies.HomeDirectory,
	})
}

// runFiles executes the files command with resolved settings.
func (app *application) runFiles(settings filesSettings) error {
	logger := app.dependencies.Logger
	aggregator := commands.Aggregator{
		SkipFolders: settings.skipFolders,
		SkipFiles:   settings.skipFiles,
		Logger:      logger,
	}
	summary, collectError := aggregator.Collect(settings.root, settings.output)
	if collectError != nil {
		return collectError
	}
	logger.Info(filesWrittenMessage,
		zap.String("output", summary.OutputPath),
		zap.Int("files", summary.FilesWritten),
		zap.Int("read_errors", summary.ReadErrors),
		zap.Int64("bytes", summary.ContentBytes),
	)
	return app.finishOutput(types.CommandFiles, summary.OutputPath, settings.outputOptions)
}

// runTree executes the tree command with resolved settings.
func (app *application) runTree(settings treeSettings) error {
	logger := app.dependencies.Logger
	renderer := commands.TreeRenderer{
		SkipFolders: settings.skipFolders,
		Logger:      logger,
	}
	summary, renderError := renderer.Render(settings.root, settings.output)
	if renderError != nil {
		return renderError
	}
	logger.Info(treeWrittenMessage,
		zap.String("output", summary.OutputPath),
		zap.Int("directories", summary.Directories),
		zap.Int("files", summary.Files),
		zap.Int("lines", summary.LinesWritten),
	)
	return app.finishOutput(types.CommandTree, summary.OutputPath, settings.outputOptions)
}

// finishOutput counts tokens and copies the written output when requested.
func (app *application) finishOutput(commandName string, outputPath string, options outputOptions) error {
	logger := app.dependencies.Logger.With(zap.String("command", commandName))
	if options.tokens {
		counter, resolvedModel, counterError := app.dependencies.NewCounter(tokenizer.Config{Model: options.model})
		if counterError != nil {
			return counterError
		}
		countResult, countError := tokenizer.CountFile(counter, outputPath)
		if countError != nil {
			return fmt.Errorf(tokenCountErrorFormat, outputPath, countError)
		}
		if countResult.Counted {
			logger.Info(tokensCountedMessage, zap.String("model", resolvedModel), zap.Int("tokens", countResult.Tokens))
		} else {
			logger.Warn(tokensSkippedMessage, zap.String("output", outputPath))
		}
	}
	if options.copyOutput {
		if copyError := clipboard.CopyFile(app.dependencies.Copier, outputPath); copyError != nil {
			return copyError
		}
		logger.Info(clipboardCopiedMessage, zap.String("output", outputPath))
	}
	return nil
}
