// Package commands implements the CLI commands for connector.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/connector/internal/app"
	"go.trai.ch/connector/internal/build"
	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for connector.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "connector <file> <line> <column>",
		Short: "Complete the function call at a source position with clang",
		Long: "Complete the function call at a source position with clang.\n\n" +
			"The project of the file is the nearest directory holding both .ccls and compile_flags.txt.\n" +
			"A file named like a subcommand must be given as ./init, or through \"connector complete\".",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runComplete,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	addOutputFileFlag(rootCmd)

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newCompleteCmd())
	rootCmd.AddCommand(c.newIndexCmd())
	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) newCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <file> <line> <column>",
		Short: "Complete the function call at a source position",
		Args:  cobra.ExactArgs(3),
		RunE:  c.runComplete,
	}
	addOutputFileFlag(cmd)
	return cmd
}

func addOutputFileFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("output-file", "o", false, "Write the result to a handoff file and print its path")
}

func (c *CLI) runComplete(cmd *cobra.Command, args []string) error {
	line, err := parsePosition("line", args[1])
	if err != nil {
		return err
	}
	column, err := parsePosition("column", args[2])
	if err != nil {
		return err
	}

	result, err := c.app.Complete(cmd.Context(), args[0], line, column)
	if err != nil {
		return err
	}

	if toFile, _ := cmd.Flags().GetBool("output-file"); toFile {
		path, err := c.app.Handoff(result)
		if err != nil {
			return err
		}
		result = path
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
	return err
}

func parsePosition(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Join(domain.ErrInvalidPosition, zerr.With(zerr.Wrap(err, "invalid "+name), name, value))
	}
	return n, nil
}

// SetOutput redirects the command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}
