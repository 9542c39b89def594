package main

import (
	"os"
	"path/filepath"

	"github.com/dkinzler/autogen/log"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v2"
)

const version string = "0.2"

func main() {
	// variables from a .env file in the working directory, existing environment variables take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		color.New(color.FgRed).Fprintln(os.Stderr, "could not load .env file:", err)
		os.Exit(1)
	}

	app := &cli.App{
		Name:    "autogen",
		Usage:   "generates request and repository types for interfaces annotated with @Autogen",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "fail-on-error",
				Value:   true,
				Aliases: []string{"e"},
				EnvVars: []string{"AUTOGEN_FAIL_ON_ERROR"},
				Usage:   "If true code generation is aborted on first error.",
			},
			&cli.BoolFlag{
				Name:    "strict",
				EnvVars: []string{"AUTOGEN_STRICT"},
				Usage:   "If true a scheduler directive that does not fit the return type of a method is an error instead of a warning.",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				EnvVars: []string{"AUTOGEN_DRY_RUN"},
				Usage:   "Print the files that would be written instead of writing them.",
			},
			&cli.StringFlag{
				Name:    "moduleName",
				EnvVars: []string{"AUTOGEN_MODULE_NAME"},
				Usage:   "Name of the module the input directory belongs to, e.g. github.com/user/example .",
			},
			&cli.StringFlag{
				Name:    "modulePath",
				EnvVars: []string{"AUTOGEN_MODULE_PATH"},
				Usage:   "Path to the root directory of the module the input directory belongs to. If empty will attempt to find the module by looking for a go.mod file in the input directory and its ancestors.",
			},
			&cli.StringFlag{
				Name:        "inputDir",
				Value:       ".",
				EnvVars:     []string{"AUTOGEN_INPUT_DIR"},
				Usage:       "Directory to search for code generator annotations.",
				DefaultText: "default: current working directory",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				EnvVars: []string{"AUTOGEN_CONFIG"},
				Usage:   "Yaml file that configures the types and functions used by generated code. If empty, autogen.yaml in the module root is used if it exists.",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				EnvVars: []string{"AUTOGEN_LOG_LEVEL"},
				Usage:   "One of debug, info, warn or error.",
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "logfmt",
				EnvVars: []string{"AUTOGEN_LOG_FORMAT"},
				Usage:   "One of logfmt, json or pretty (indented json). Errors are logged with their stack trace in json.",
			},
		},
		Action: func(ctx *cli.Context) error {
			logger, err := newLogger(ctx.String("log-format"), ctx.String("log-level"))
			if err != nil {
				return err
			}

			inputDir, err := filepath.Abs(ctx.String("inputDir"))
			if err != nil {
				return err
			}

			modulePath := ctx.String("modulePath")
			if modulePath != "" {
				modulePath, err = filepath.Abs(modulePath)
				if err != nil {
					return err
				}
			}

			config := GeneratorConfig{
				InputDir:    inputDir,
				ModuleName:  ctx.String("moduleName"),
				ModulePath:  modulePath,
				FailOnError: ctx.Bool("fail-on-error"),
				Strict:      ctx.Bool("strict"),
				ConfigFile:  ctx.String("config"),
				DryRun:      ctx.Bool("dry-run"),
			}
			return generate(config, logger, os.Stdout)
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Every event of a run carries the same run id.
func newLogger(format, level string) (log.Logger, error) {
	l, err := log.ParseLevel(level)
	if err != nil {
		return log.Logger{}, err
	}
	f, options, err := log.ParseFormat(format)
	if err != nil {
		return log.Logger{}, err
	}
	return log.DefaultLogger(f, append(options, l)...).With("run", uuid.NewString()), nil
}
