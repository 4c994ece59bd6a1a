package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SubCommand couples a cobra command with the viper instance its flags are
// read from. Values come from flags, then MREGEXP_<NAME>_* environment
// variables, then the --config file.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}

// bind attaches a fresh viper instance to the command's flags.
func (s *SubCommand) bind(persistent *cobra.Command) {
	s.Conf = viper.New()
	_ = s.Conf.BindPFlags(s.Cmd.Flags())
	_ = s.Conf.BindPFlags(persistent.PersistentFlags())
	s.Conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.Conf.SetEnvPrefix(s.EnvPrefix)
	s.Conf.AutomaticEnv()
}

// GetStringSliceP returns the value of the flag name, falling back to its
// shorthand and then to def.
func (s *SubCommand) GetStringSliceP(name, shorthand string, def []string) []string {
	if s.Conf.IsSet(name) {
		return s.Conf.GetStringSlice(name)
	}
	if shorthand != "" && s.Conf.IsSet(shorthand) {
		return s.Conf.GetStringSlice(shorthand)
	}
	return def
}
