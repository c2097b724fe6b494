// httpmsg-decode is a stdin to stdout filter over HTTP message bodies.
//
// The input is the raw body as it appeared on the wire; headers are
// supplied through flags. By default the filter undoes the
// Content-Encoding coding and writes the decoded bytes. With --text it
// decodes one layer further and writes the body as UTF-8 text. With
// --re-encode it rewrites the wire coding instead. --replace applies a
// regex substitution to the decoded body before output; pattern and
// replacement understand the usual backslash escapes.
package main

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/spf13/pflag"

	"github.com/magnologan/httpmsg/pkg/encoding"
	"github.com/magnologan/httpmsg/pkg/logging"
	"github.com/magnologan/httpmsg/pkg/message"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	contentEncoding string
	contentType     string
	text            bool
	lenient         bool
	reEncode        string
	replace         string
	with            string
}

func run() error {
	var opts options
	var logLevel string

	flagSet := pflag.NewFlagSet("httpmsg-decode", pflag.ContinueOnError)
	flagSet.StringVar(&opts.contentEncoding, "content-encoding", "", "Content-Encoding of the input body (gzip, deflate, br, zstd)")
	flagSet.StringVar(&opts.contentType, "content-type", "", "Content-Type of the input body, including charset parameter")
	flagSet.BoolVar(&opts.text, "text", false, "write the body as UTF-8 text instead of decoded bytes")
	flagSet.BoolVar(&opts.lenient, "lenient", false, "degrade on broken codings instead of failing")
	flagSet.StringVar(&opts.reEncode, "re-encode", "", "rewrite the wire coding to this scheme and write wire bytes")
	flagSet.StringVar(&opts.replace, "replace", "", "regex applied to the decoded body")
	flagSet.StringVar(&opts.with, "with", "", "replacement for --replace matches")
	flagSet.StringVar(&logLevel, "log-level", getEnv("HTTPMSG_LOG_LEVEL", "warn"), "log level (debug, info, warn, error)")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	if opts.text && opts.reEncode != "" {
		return fmt.Errorf("--text and --re-encode are mutually exclusive")
	}
	if opts.with != "" && opts.replace == "" {
		return fmt.Errorf("--with requires --replace")
	}
	// Reject a bad target coding before consuming stdin.
	if opts.reEncode != "" && !encoding.Supported(opts.reEncode) {
		return fmt.Errorf("unknown coding for --re-encode: %s", opts.reEncode)
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(logLevel),
		Pretty: true,
		Output: os.Stderr,
	})

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	output, err := transform(input, opts)
	if err != nil {
		return err
	}
	if _, err := os.Stdout.Write(output); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}

// getEnv returns the environment variable value or a fallback.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// transform runs the requested pipeline over one body.
func transform(input []byte, opts options) ([]byte, error) {
	log := logging.NewLogger("httpmsg-decode")

	m := message.New()
	if opts.contentEncoding != "" {
		m.Headers.Set("Content-Encoding", opts.contentEncoding)
	}
	if opts.contentType != "" {
		m.Headers.Set("Content-Type", opts.contentType)
	}
	m.SetRawContent(input)

	if opts.replace != "" {
		re, err := regexp.Compile(string(message.Unescape(opts.replace)))
		if err != nil {
			return nil, fmt.Errorf("compile --replace: %w", err)
		}
		count, err := m.Replace(re, message.Unescape(opts.with))
		if err != nil {
			return nil, fmt.Errorf("replace: %w", err)
		}
		log.Debug().
			Str("pattern", opts.replace).
			Int("count", count).
			Msg("body replace applied")
	}

	strict := !opts.lenient

	if opts.reEncode != "" {
		// Encode wraps whatever bytes are on the wire, so undo the
		// current coding first to swap it rather than stack them.
		if err := m.Decode(strict); err != nil {
			return nil, fmt.Errorf("re-encode: %w", err)
		}
		if err := m.Encode(opts.reEncode); err != nil {
			return nil, fmt.Errorf("re-encode: %w", err)
		}
		log.Debug().
			Str("coding", opts.reEncode).
			Int("bytes", len(m.RawContent())).
			Msg("body re-encoded")
		return m.RawContent(), nil
	}

	if opts.text {
		text, err := m.Text(strict)
		if err != nil {
			return nil, fmt.Errorf("decode text: %w", err)
		}
		log.Debug().
			Str("charset", m.GuessCharset()).
			Int("bytes", len(text)).
			Msg("body decoded to text")
		return []byte(text), nil
	}

	content, err := m.Content(strict)
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	log.Debug().
		Str("coding", m.Headers.GetDefault("Content-Encoding", "identity")).
		Int("bytes", len(content)).
		Msg("body decoded")
	return content, nil
}
