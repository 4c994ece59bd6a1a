package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mregexp"
)

const (
	highlightOn  = "\x1b[31;1m"
	highlightOff = "\x1b[0m"
)

func newMatch() *SubCommand {
	sc := &SubCommand{EnvPrefix: "MREGEXP_MATCH"}
	sc.Cmd = &cobra.Command{
		Use:   "match [PATTERN] [TEXT]",
		Short: "Match one pattern against one text",
		Long: `Match compiles PATTERN and prints TEXT with the leftmost match highlighted.
Missing arguments are read from standard input, one line each.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, sc.Conf, args)
		},
	}
	flags := sc.Cmd.Flags()
	flags.Bool("all", false, "Highlight every non-overlapping match instead of the first.")
	flags.Bool("captures", false, "Print the span of each group.")
	flags.Bool("dump", false, "Print the compiled node arena.")
	flags.Bool("color", true, "Highlight matches with terminal escapes; otherwise use [brackets].")
	return sc
}

func runMatch(cmd *cobra.Command, conf *viper.Viper, args []string) error {
	out := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())

	pattern, text := "", ""
	var err error
	if len(args) > 0 {
		pattern = args[0]
	} else if pattern, err = prompt(out, in, "Enter regular expression > "); err != nil {
		return trouble(err)
	}
	if len(args) > 1 {
		text = args[1]
	} else if text, err = prompt(out, in, "Enter text > "); err != nil {
		return trouble(err)
	}

	re, err := mregexp.CompileWithConfig(pattern, compileConfig(conf))
	if err != nil {
		kind := mregexp.KindOf(err)
		fmt.Fprintf(out, "Invalid regular expression: Compile failed with error %d (%s)\n",
			int(kind), kind.String())
		return &exitError{code: exitTrouble}
	}
	defer func() { _ = re.Release() }()

	if conf.GetBool("dump") {
		fmt.Fprint(out, re.Dump())
	}

	var matches []*mregexp.Match
	if conf.GetBool("all") {
		matches, err = re.FindAll(text)
	} else {
		var m *mregexp.Match
		if m, err = re.FindFirst(text); m != nil {
			matches = []*mregexp.Match{m}
		}
	}
	if err != nil {
		return trouble(errors.Wrap(err, "while matching text"))
	}
	if len(matches) == 0 {
		fmt.Fprintln(out, "No match :c")
		return noMatch()
	}

	fmt.Fprintln(out, highlight(text, matches, conf.GetBool("color")))
	if conf.GetBool("captures") {
		for _, m := range matches {
			printCaptures(out, text, m)
		}
	}
	return nil
}

// prompt writes label and reads one line, without its line ending.
func prompt(out io.Writer, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errors.Wrap(err, "while reading standard input")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// highlight marks each matched span of text. Empty matches are shown as an
// empty pair of markers.
func highlight(text string, matches []*mregexp.Match, color bool) string {
	on, off := "[", "]"
	if color {
		on, off = highlightOn, highlightOff
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.Begin])
		b.WriteString(on)
		b.WriteString(text[m.Begin:m.End])
		b.WriteString(off)
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String()
}

func printCaptures(out io.Writer, text string, m *mregexp.Match) {
	fmt.Fprintf(out, "match [%d,%d) %q\n", m.Begin, m.End, text[m.Begin:m.End])
	for i := range m.Captures {
		span, ok := m.Capture(i)
		if !ok {
			fmt.Fprintf(out, "  group %d: unset\n", i)
			continue
		}
		fmt.Fprintf(out, "  group %d: [%d,%d) %q\n", i, span.Begin, span.End, text[span.Begin:span.End])
	}
}
