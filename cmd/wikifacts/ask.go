// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wikifacts/internal/cache"
	"github.com/pdiddy/wikifacts/internal/dispatch"
	"github.com/pdiddy/wikifacts/internal/facts"
	"github.com/pdiddy/wikifacts/internal/pattern"
	"github.com/pdiddy/wikifacts/internal/wiki"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a factual question, or start the interactive query loop",
	Long: `Ask answers natural-language factual questions such as "when was ada
lovelace born" or "what is the polar radius of mars". With arguments it
answers one question and exits; without arguments it reads questions from
standard input until "bye", Ctrl-C, or end of input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, cleanup, err := buildTable()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if len(args) > 0 {
			return askOnce(ctx, table, strings.Join(args, " "), cmd.OutOrStdout())
		}
		return queryLoop(ctx, table, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}

// buildTable wires the fact service from configuration and returns the
// pattern-action table plus a cleanup function for the cache handle.
func buildTable() (*dispatch.Table, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	client := wiki.NewClient(cfg.Wiki, logger)

	var store *cache.Store
	cleanup := func() {}
	if cfg.Cache.Path != "" {
		store, err = cache.Open(cfg.Cache)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { store.Close() }
	}

	rules := facts.DefaultRules()
	if cfg.RulesFile != "" {
		rules, err = facts.LoadRules(cfg.RulesFile)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	svc, err := facts.NewService(client, client, rules, store, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return newTable(svc), cleanup, nil
}

// newTable declares the pattern-action list. The table is evaluated in
// order; the first matching pattern wins.
func newTable(svc *facts.Service) *dispatch.Table {
	return dispatch.NewTable([]dispatch.Entry{
		{Pattern: pattern.Parse("when was % born"), Handler: svc.Handler(facts.FieldBirthDate)},
		{Pattern: pattern.Parse("where was % born"), Handler: svc.Handler(facts.FieldBirthPlace)},
		{Pattern: pattern.Parse("what is the polar radius of %"), Handler: svc.Handler(facts.FieldPolarRadius)},
		{Pattern: pattern.Parse("what is the population of %"), Handler: svc.Handler(facts.FieldPopulation)},
		{Pattern: pattern.Parse("what is the official language of %"), Handler: svc.Handler(facts.FieldOfficialLanguages)},
		{Pattern: pattern.Parse("what are the official languages of %"), Handler: svc.Handler(facts.FieldOfficialLanguages)},
		{Pattern: pattern.Parse("bye"), Handler: byeHandler},
	})
}

func byeHandler(context.Context, []string) (dispatch.Result, error) {
	return dispatch.Result{Terminate: true}, nil
}

// askOnce answers a single question and returns.
func askOnce(ctx context.Context, table *dispatch.Table, question string, out io.Writer) error {
	res := table.Dispatch(ctx, pattern.Tokenize(question))
	for _, ans := range res.Answers {
		fmt.Fprintln(out, ans)
	}
	return nil
}

// queryLoop reads questions from in until a terminating pattern, an
// interrupt, or end of input, printing the answers for each. Input is
// read on a separate goroutine so an interrupt during a blocked read
// still ends the loop promptly.
func queryLoop(ctx context.Context, table *dispatch.Table, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Welcome to the Wikipedia fact finder!")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

loop:
	for {
		fmt.Fprint(out, "\nYour query? ")

		select {
		case <-ctx.Done():
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			tokens := pattern.Tokenize(line)
			if len(tokens) == 0 {
				continue
			}
			res := table.Dispatch(ctx, tokens)
			if res.Terminate {
				break loop
			}
			for _, ans := range res.Answers {
				fmt.Fprintln(out, ans)
			}
		}
	}

	fmt.Fprintln(out, "\nSo long!")
	return nil
}
