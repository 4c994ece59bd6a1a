package cmd

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mregexp"
	"mregexp/cache"
)

const maxLine = 16 << 20

func newGrep() *SubCommand {
	sc := &SubCommand{EnvPrefix: "MREGEXP_GREP"}
	sc.Cmd = &cobra.Command{
		Use:   "grep [PATTERN] [FILE...]",
		Short: "Print lines matching any of the patterns",
		Long: `Grep prints each line of the named files, or of standard input, that contains
a match of any pattern. Patterns come from -e, from -f, or else from the first
argument. The exit status is 0 if a line was printed, 1 if none was, and 2
on error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrep(cmd, sc, args)
		},
	}
	flags := sc.Cmd.Flags()
	flags.StringArrayP("regexp", "e", nil, "Pattern to search for; may be repeated.")
	flags.StringP("file", "f", "", "Read patterns from this file, one per line.")
	flags.BoolP("line-number", "n", false, "Prefix each line with its line number.")
	flags.BoolP("only-matching", "o", false, "Print only the matched parts of each line.")
	flags.BoolP("count", "c", false, "Print only the number of matching lines per file.")
	flags.Bool("invert-match", false, "Print lines that do not match.")
	flags.BoolP("recursive", "r", false, "Search directories recursively.")
	flags.Bool("stats", false, "Report bytes and lines scanned and pattern cache hits on standard error.")
	flags.Int64("cache_size", cache.DefaultOptions().MaxPatterns, "Compiled patterns to keep.")
	return sc
}

type grepOptions struct {
	lineNumber bool
	only       bool
	count      bool
	invert     bool
	prefix     bool
}

type grepStats struct {
	bytes   uint64
	lines   int
	matched int
}

func runGrep(cmd *cobra.Command, sc *SubCommand, args []string) error {
	conf := sc.Conf
	patterns, args, err := grepPatterns(sc, args)
	if err != nil {
		return trouble(err)
	}
	if len(patterns) == 0 {
		return trouble(errors.New("no pattern given"))
	}

	cc, err := cache.New(cache.Options{
		MaxPatterns: conf.GetInt64("cache_size"),
		Config:      compileConfig(conf),
	})
	if err != nil {
		return trouble(err)
	}
	defer cc.Close()

	res := make([]*mregexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := cc.Compile(p)
		if err != nil {
			return trouble(err)
		}
		// Make the entry visible so a repeated pattern is served from the cache.
		cc.Wait()
		res = append(res, re)
	}

	paths, err := grepPaths(args, conf.GetBool("recursive"))
	if err != nil {
		return trouble(err)
	}
	opts := grepOptions{
		lineNumber: conf.GetBool("line-number"),
		only:       conf.GetBool("only-matching"),
		count:      conf.GetBool("count"),
		invert:     conf.GetBool("invert-match"),
		prefix:     len(paths) > 1 || conf.GetBool("recursive"),
	}

	out := cmd.OutOrStdout()
	var stats grepStats
	if len(paths) == 0 {
		err = grepReader(out, cmd.InOrStdin(), "(standard input)", res, opts, &stats)
	}
	for _, path := range paths {
		if err != nil {
			break
		}
		err = grepFile(out, path, res, opts, &stats)
	}
	if err != nil {
		return trouble(err)
	}

	if conf.GetBool("stats") {
		fmt.Fprintf(cmd.ErrOrStderr(), "scanned %s in %s lines, %s matched, pattern cache hit ratio %.2f\n",
			humanize.Bytes(stats.bytes), humanize.Comma(int64(stats.lines)),
			humanize.Comma(int64(stats.matched)), cc.HitRatio())
	}
	if stats.matched == 0 {
		return noMatch()
	}
	return nil
}

// grepPatterns collects patterns from -e and -f. Without either, the first
// argument is the pattern and is removed from args.
func grepPatterns(sc *SubCommand, args []string) ([]string, []string, error) {
	patterns := sc.GetStringSliceP("regexp", "e", nil)
	if file := sc.Conf.GetString("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "while reading patterns from %s", file)
		}
		for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
			patterns = append(patterns, strings.TrimSuffix(line, "\r"))
		}
	}
	if len(patterns) == 0 && len(args) > 0 {
		return args[:1], args[1:], nil
	}
	return patterns, args, nil
}

// grepPaths expands directories when recursive is set.
func grepPaths(args []string, recursive bool) ([]string, error) {
	if !recursive {
		return args, nil
	}
	var paths []string
	for _, root := range args {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "while walking %s", root)
		}
	}
	return paths, nil
}

func grepFile(out io.Writer, path string, res []*mregexp.Regexp, opts grepOptions, stats *grepStats) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "while opening %s", path)
	}
	defer f.Close()
	return grepReader(out, f, path, res, opts, stats)
}

func grepReader(out io.Writer, r io.Reader, name string, res []*mregexp.Regexp,
	opts grepOptions, stats *grepStats) error {

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLine)

	matched := 0
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		stats.bytes += uint64(len(line)) + 1
		stats.lines++

		spans := lineMatches(line, name, lineNo, res)
		if (len(spans) > 0) == opts.invert {
			continue
		}
		matched++
		if opts.count {
			continue
		}

		var prefix string
		if opts.prefix {
			prefix = name + ":"
		}
		if opts.lineNumber {
			prefix += fmt.Sprintf("%d:", lineNo)
		}
		if opts.only && !opts.invert {
			for _, s := range spans {
				if s.Len() > 0 {
					fmt.Fprintf(out, "%s%s\n", prefix, line[s.Begin:s.End])
				}
			}
			continue
		}
		fmt.Fprintf(out, "%s%s\n", prefix, line)
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "while reading %s", name)
	}

	if opts.count {
		if opts.prefix {
			fmt.Fprintf(out, "%s:", name)
		}
		fmt.Fprintf(out, "%d\n", matched)
	}
	stats.matched += matched
	return nil
}

// lineMatches returns the spans of the first pattern that matches line.
// Lines that are not valid UTF-8 never match.
func lineMatches(line, name string, lineNo int, res []*mregexp.Regexp) []mregexp.Span {
	for _, re := range res {
		matches, err := re.FindAll(line)
		if err != nil {
			glog.Warningf("grep: %s:%d: %v", name, lineNo, err)
			return nil
		}
		if len(matches) == 0 {
			continue
		}
		spans := make([]mregexp.Span, len(matches))
		for i, m := range matches {
			spans[i] = m.Span
		}
		return spans
	}
	return nil
}

// compileConfig reads the library configuration shared by all subcommands.
func compileConfig(conf *viper.Viper) mregexp.Config {
	config := mregexp.DefaultConfig()
	config.MaxNodes = conf.GetInt("max_nodes")
	config.Prefilter = conf.GetBool("prefilter")
	return config
}
