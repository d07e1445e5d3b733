package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"task-reminder-bot/pkg/datemath"
)

const refLayout = "2006-01-02 15:04"

type rootOptions struct {
	timezone string
	now      string
	fallback bool
	format   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "datectl",
		Short:         "Resolve Russian date and time expressions from the command line",
		Long:          "datectl runs the deadline parser used by the bot: normalize spoken text, parse a deadline, extract one from a task description or compute a reminder.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.timezone, "tz", "Europe/Moscow", "IANA timezone used for resolution")
	root.PersistentFlags().StringVar(&opts.now, "now", "", `Reference instant, RFC3339 or "2006-01-02 15:04" (default: current time)`)
	root.PersistentFlags().BoolVar(&opts.fallback, "fallback", false, "Hand unrecognized input to the general NLP parser")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "text", "Output format: text or json")

	root.AddCommand(newNormalizeCmd())
	root.AddCommand(newParseCmd(opts))
	root.AddCommand(newExtractCmd(opts))
	root.AddCommand(newReminderCmd(opts))

	return root
}

func (o *rootOptions) parser() (*datemath.Parser, error) {
	var dmOpts []datemath.Option
	if o.fallback {
		dmOpts = append(dmOpts, datemath.WithNLPFallback())
	}
	return datemath.NewParser(o.timezone, dmOpts...)
}

// reference resolves --now in the parser's timezone.
func (o *rootOptions) reference(p *datemath.Parser) (time.Time, error) {
	return parseInstant(o.now, p)
}

func parseInstant(value string, p *datemath.Parser) (time.Time, error) {
	if value == "" {
		return p.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(p.Location()), nil
	}
	t, err := time.ParseInLocation(refLayout, value, p.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want RFC3339 or %q", value, refLayout)
	}
	return t, nil
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// printResult writes v as indented JSON, or the text lines otherwise.
func (o *rootOptions) printResult(w io.Writer, v any, lines ...string) error {
	if o.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
