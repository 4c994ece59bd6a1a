// Package cmd implements the mregexp command line tool.
package cmd

import (
	goflag "flag"
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

// NewRootCmd builds the command tree. Each call returns independent commands
// and configuration, so tests can run several side by side.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mregexp",
		Short: "mregexp: a small regular expression engine",
		Long: `
mregexp compiles patterns into a fixed node arena and matches them with a
possessive backtracking matcher over UTF-8 text. The match command tries a
single pattern against a single text; grep filters lines of files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden to values set with environment variables and flags.")
	root.PersistentFlags().Int("max_nodes", 1<<20,
		"Largest node arena a pattern may compile into; 0 means no limit.")
	root.PersistentFlags().Bool("prefilter", true,
		"Skip start positions that cannot begin a match using leading literals.")

	subcommands := []*SubCommand{newMatch(), newGrep()}
	for _, sc := range subcommands {
		root.AddCommand(sc.Cmd)
		sc.bind(root)
	}

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := root.PersistentFlags().GetString("config")
		if err != nil || cfg == "" {
			return err
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			if err := sc.Conf.ReadInConfig(); err != nil {
				return trouble(errors.Wrapf(err, "while reading config %s", cfg))
			}
		}
		glog.V(1).Infof("mregexp: loaded config from %s", cfg)
		return nil
	}
	return root
}

// Execute runs the tool and returns the process exit status.
func Execute(args []string) int {
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	// glog expects the standard flag set to have been parsed.
	_ = goflag.CommandLine.Parse(nil)

	root := NewRootCmd()
	root.SetArgs(args)
	code := execute(root)
	glog.Flush()
	return code
}

func execute(root *cobra.Command) int {
	err := root.Execute()
	if err != nil && !silent(err) {
		fmt.Fprintln(root.ErrOrStderr(), err)
	}
	return ExitCode(err)
}
