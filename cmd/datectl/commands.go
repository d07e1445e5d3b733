package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-reminder-bot/pkg/datemath"
)

type parseResult struct {
	Time    time.Time `json:"time"`
	Rule    string    `json:"rule"`
	Display string    `json:"display"`
}

type extractResult struct {
	Title    string     `json:"title"`
	Found    bool       `json:"found"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Rule     string     `json:"rule,omitempty"`
	Span     string     `json:"span,omitempty"`
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <text>",
		Short: "Rewrite spoken date/time phrasing into canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), datemath.Normalize(joinArgs(args)))
			return err
		},
	}
}

func newParseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "parse <expression>",
		Short:   "Resolve an isolated deadline expression",
		Example: `  datectl parse --now "2026-02-10 10:00" завтра в 16:00`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.parser()
			if err != nil {
				return err
			}
			ref, err := opts.reference(p)
			if err != nil {
				return err
			}

			text := joinArgs(args)
			m, err := p.MatchDeadline(text, ref)
			if err != nil {
				return fmt.Errorf("%q: %w", text, err)
			}

			res := parseResult{Time: m.Time, Rule: m.Rule, Display: datemath.FormatDeadline(m.Time, ref)}
			return opts.printResult(cmd.OutOrStdout(), res,
				m.Time.Format(time.RFC3339),
				"rule: "+m.Rule,
				"display: "+res.Display,
			)
		},
	}
}

func newExtractCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "extract <task text>",
		Short:   "Split a task description into a title and a deadline",
		Example: `  datectl extract Сдать отчёт до пятницы`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.parser()
			if err != nil {
				return err
			}
			ref, err := opts.reference(p)
			if err != nil {
				return err
			}

			text := datemath.Normalize(joinArgs(args))
			title, m, err := p.ExtractMatch(text, ref)
			if errors.Is(err, datemath.ErrNoMatch) {
				return opts.printResult(cmd.OutOrStdout(), extractResult{Title: text},
					"title: "+text,
					"deadline: none",
				)
			}
			if err != nil {
				return err
			}

			res := extractResult{Title: title, Found: true, Deadline: &m.Time, Rule: m.Rule, Span: m.Span}
			return opts.printResult(cmd.OutOrStdout(), res,
				"title: "+title,
				"deadline: "+m.Time.Format(time.RFC3339),
				"rule: "+m.Rule,
				"span: "+m.Span,
			)
		},
	}
}

func newReminderCmd(opts *rootOptions) *cobra.Command {
	var deadline string

	cmd := &cobra.Command{
		Use:     "reminder <expression>",
		Short:   "Compute a reminder time, optionally relative to a deadline",
		Example: `  datectl reminder --deadline "2026-02-11 16:00" за час`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.parser()
			if err != nil {
				return err
			}
			ref, err := opts.reference(p)
			if err != nil {
				return err
			}

			var dl *time.Time
			if deadline != "" {
				t, err := parseInstant(deadline, p)
				if err != nil {
					return err
				}
				dl = &t
			}

			text := joinArgs(args)
			at, err := p.ParseReminder(text, ref, dl)
			if err != nil {
				return fmt.Errorf("%q: %w", text, err)
			}

			res := parseResult{Time: at, Rule: "reminder", Display: datemath.FormatDeadline(at, ref)}
			return opts.printResult(cmd.OutOrStdout(), res,
				at.Format(time.RFC3339),
				"display: "+res.Display,
			)
		},
	}
	cmd.Flags().StringVar(&deadline, "deadline", "", `Deadline the reminder is relative to, RFC3339 or "2006-01-02 15:04"`)
	return cmd
}
