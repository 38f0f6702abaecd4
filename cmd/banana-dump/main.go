// banana-dump decodes Banana messages and prints them.
//
// Usage:
//
//	banana-dump [flags] [file]
//
// The message is read from the given file, or from stdin if no file is given. With --envelope, the input is a
// sequence of envelopes, each holding a single element.
package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"
	"github.com/ghodss/yaml"
	"github.com/spf13/pflag"

	"github.com/eluv-io/banana-go/format/banana"
	"github.com/eluv-io/banana-go/format/banana/pb"
	"github.com/eluv-io/banana-go/format/envelope"
)

var log = elog.Get("/banana/dump")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Error("banana-dump failed", err)
		os.Exit(1)
	}
}

type config struct {
	profile  string
	hex      bool
	envelope bool
	strict   bool
	maxDepth int
	output   string
	verbose  bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	e := errors.Template("banana-dump", errors.K.Invalid)

	var cfg config
	flagSet := pflag.NewFlagSet("banana-dump", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&cfg.profile, "profile", "none", "extension profile: none or pb")
	flagSet.BoolVar(&cfg.hex, "hex", false, "input is hex text, whitespace is ignored")
	flagSet.BoolVar(&cfg.envelope, "envelope", false, "input is a sequence of envelopes")
	flagSet.BoolVar(&cfg.strict, "strict", false, "reject trailing bytes after the element")
	flagSet.IntVar(&cfg.maxDepth, "max-depth", banana.DefaultMaxDepth, "maximum list nesting depth, 0 for unlimited")
	flagSet.StringVarP(&cfg.output, "output", "o", "text", "output format: text, json or yaml")
	flagSet.BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging")
	flagSet.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: banana-dump [flags] [file]\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return e(err)
	}
	if flagSet.NArg() > 1 {
		return e("reason", "too many arguments", "args", flagSet.Args())
	}
	if cfg.verbose {
		elog.SetDefault(&elog.Config{
			Level:   "debug",
			Handler: "text",
		})
	}

	var opts []banana.Option
	switch cfg.profile {
	case "none":
	case "pb":
		opts = append(opts, banana.OptProfile(pb.Profile{}))
	default:
		return e("reason", "unknown profile", "profile", cfg.profile)
	}
	if cfg.strict {
		opts = append(opts, banana.OptStrict())
	}
	opts = append(opts, banana.OptMaxDepth(cfg.maxDepth))

	var printFn func(io.Writer, banana.Element) error
	switch cfg.output {
	case "text":
		printFn = printText
	case "json":
		printFn = printJSON
	case "yaml":
		printFn = printYAML
	default:
		return e("reason", "unknown output format", "output", cfg.output)
	}

	in, err := readInput(flagSet.Arg(0), stdin)
	if err != nil {
		return err
	}
	if cfg.hex {
		in, err = decodeHex(in)
		if err != nil {
			return err
		}
	}

	out := bufio.NewWriter(stdout)
	defer func() { _ = out.Flush() }()

	if !cfg.envelope {
		el, err := banana.NewDecoder(opts...).Decode(in)
		if err != nil {
			return e(err)
		}
		return printFn(out, el)
	}

	var dec *banana.Decoder
	if flagSet.Changed("profile") {
		dec = banana.NewDecoder(opts...)
	}
	r := bytes.NewReader(in)
	for count := 0; ; count++ {
		d := dec
		if d == nil {
			d = envelope.DecoderFor(formatOf(r), opts...)
		}
		el, format, err := envelope.ReadElement(r, d)
		if err != nil {
			if count > 0 && errors.IsKind(errors.K.NotExist, err) {
				return nil
			}
			return errors.E("banana-dump", err, "envelope", count)
		}
		log.Debug("decoded envelope", "envelope", count, "format", format)
		if err = printFn(out, el); err != nil {
			return err
		}
	}
}

// formatOf peeks at the format of the next envelope in r. Returns "" if it cannot be determined.
func formatOf(r *bytes.Reader) string {
	pos := r.Size() - int64(r.Len())
	defer func() { _, _ = r.Seek(pos, io.SeekStart) }()
	_, format, _, err := envelope.Read(r)
	if err != nil {
		return ""
	}
	return format
}

func readInput(file string, stdin io.Reader) ([]byte, error) {
	if file == "" || file == "-" {
		in, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.E("banana-dump", errors.K.IO, err, "reason", "failed to read stdin")
		}
		return in, nil
	}
	in, err := os.ReadFile(file)
	if err != nil {
		kind := errors.K.IO
		if os.IsNotExist(err) {
			kind = errors.K.NotExist
		}
		return nil, errors.E("banana-dump", kind, err, "file", file)
	}
	return in, nil
}

func decodeHex(in []byte) ([]byte, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(in))
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	res, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.E("banana-dump", errors.K.Invalid, err, "reason", "invalid hex input")
	}
	return res, nil
}

func printText(w io.Writer, el banana.Element) error {
	_, err := fmt.Fprintln(w, el.String())
	if err != nil {
		return errors.E("banana-dump", errors.K.IO, err)
	}
	return nil
}

func printJSON(w io.Writer, el banana.Element) error {
	bts, err := json.Marshal(banana.ToValue(el))
	if err != nil {
		return errors.E("banana-dump", errors.K.Invalid, err, "reason", "failed to marshal json")
	}
	_, err = fmt.Fprintln(w, string(bts))
	if err != nil {
		return errors.E("banana-dump", errors.K.IO, err)
	}
	return nil
}

func printYAML(w io.Writer, el banana.Element) error {
	bts, err := yaml.Marshal(banana.ToValue(el))
	if err != nil {
		return errors.E("banana-dump", errors.K.Invalid, err, "reason", "failed to marshal yaml")
	}
	_, err = fmt.Fprintf(w, "---\n%s", bts)
	if err != nil {
		return errors.E("banana-dump", errors.K.IO, err)
	}
	return nil
}
