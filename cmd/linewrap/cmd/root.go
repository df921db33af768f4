// Package cmd implements the linewrap command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/linewrap/linewrap"
	"github.com/linewrap/linewrap/report"
)

// errChangesNeeded is returned by --check runs that found files to rewrite.
var errChangesNeeded = errors.New("files need rewrapping")

type rootCommand struct {
	cmd    *cobra.Command
	fs     afero.Fs
	logger *logrus.Logger
	stdout io.Writer
	stderr io.Writer

	maxWidth   int
	write      bool
	check      bool
	configPath string
	verbose    bool
}

func newRootCommand(fsys afero.Fs, stdout, stderr io.Writer) *rootCommand {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(logrus.InfoLevel)

	c := &rootCommand{
		fs:     fsys,
		logger: logger,
		stdout: stdout,
		stderr: stderr,
	}
	c.cmd = &cobra.Command{
		Use:   "linewrap [files...]",
		Short: "rewrap over-long Python string literals",
		Long: `linewrap scans Python source for string literals on over-long lines and
rewrites each one as an implicit concatenation of shorter literals (or, for
triple-quoted literals, wraps the text inside the quotes). Code and comments
are never touched, and every rewrite preserves the literal's value.

With no flags, the rewritten source is printed to stdout.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.run,
	}

	flags := c.cmd.Flags()
	flags.IntVarP(&c.maxWidth, "max-width", "w", 0, "column budget (overrides the config file)")
	flags.BoolVar(&c.write, "write", false, "rewrite files in place instead of printing to stdout")
	flags.BoolVar(&c.check, "check", false, "exit non-zero if any file would change, without writing")
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (default "+defaultConfigFile+")")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	return c
}

func (c *rootCommand) run(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.logger.SetLevel(logrus.DebugLevel)
	}

	path, explicit := c.configPath, true
	if path == "" {
		path, explicit = defaultConfigFile, false
	}
	cfg, err := loadConfig(c.fs, path, explicit)
	if err != nil {
		return err
	}
	if c.maxWidth == 0 {
		c.maxWidth = cfg.MaxWidth
	}
	if !cmd.Flags().Changed("write") {
		c.write = cfg.ApplyOnSave
	}

	var dirty int
	for _, arg := range args {
		changed, err := c.runFile(arg)
		if err != nil {
			return err
		}
		if changed {
			dirty++
		}
	}

	if c.check && dirty > 0 {
		c.logger.Infof("%d file(s) need rewrapping", dirty)
		return errChangesNeeded
	}
	return nil
}

// runFile rewraps one file and reports whether it would change.
func (c *rootCommand) runFile(path string) (bool, error) {
	text, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return false, err
	}

	file := report.NewFile(path, string(text))
	res, err := linewrap.Rewrap(file, linewrap.Options{MaxWidth: c.maxWidth})

	// Diagnostics are not errors; show them even when the run fails.
	if render := (report.Renderer{}).RenderString(res.Report); render != "" {
		fmt.Fprint(c.stderr, render)
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	c.logger.WithFields(logrus.Fields{
		"path":  path,
		"edits": len(res.Edits),
	}).Debug("rewrapped file")

	changed := len(res.Edits) > 0
	if c.check {
		return changed, nil
	}

	rewritten := linewrap.Apply(string(text), res.Edits)
	if c.write {
		if !changed {
			return false, nil
		}
		info, err := c.fs.Stat(path)
		if err != nil {
			return false, err
		}
		return true, afero.WriteFile(c.fs, path, []byte(rewritten), info.Mode())
	}

	_, err = io.WriteString(c.stdout, rewritten)
	return changed, err
}

// Execute runs the root command against the real filesystem and exits the
// process on failure.
func Execute() {
	c := newRootCommand(afero.NewOsFs(), os.Stdout, os.Stderr)
	if err := c.cmd.Execute(); err != nil {
		if !errors.Is(err, errChangesNeeded) {
			c.logger.Error(err)
		}
		os.Exit(1)
	}
}
