package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/moments/internal/language"
	"github.com/javiermolinar/moments/internal/logging"
	"github.com/javiermolinar/moments/internal/notify"
	"github.com/javiermolinar/moments/internal/wordfetch"
)

func (a *App) wordCmd() *cobra.Command {
	var (
		lang    string
		asJSON  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "word",
		Short: "Fetch and print one word",
		Long: `Fetch a single word and print it.

If the fetch fails the error is printed to stderr and the built-in
fallback word is shown instead.

Examples:
  moments word
  moments word --lang tamil
  moments word --lang french --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if lang == "" {
				lang = a.config.Language.Default
			}
			return a.runWord(cmd, lang, asJSON, timeout)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Language code (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the word record as JSON")
	cmd.Flags().DurationVar(&timeout, "wait", 0, "How long to wait for the word (default: API timeout plus 5s)")

	return cmd
}

func (a *App) runWord(cmd *cobra.Command, lang string, asJSON bool, wait time.Duration) error {
	logger, err := logging.New(logging.Options{Debug: a.debug, Console: true})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	stderr := cmd.ErrOrStderr()
	advise := notify.SinkFunc(func(n notify.Notification) {
		fmt.Fprintf(stderr, "%s %s\n", formatError(n.Title+":"), n.Description)
	})

	svc, err := openServices(a.config, logger, advise)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	if !svc.catalog.Contains(lang) {
		return fmt.Errorf("%w: %q (run 'moments languages' to list them)", language.ErrUnknownLanguage, lang)
	}

	if wait <= 0 {
		wait = a.config.Timeout() + 5*time.Second
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), wait)
	defer cancel()

	st, err := fetchFirst(ctx, svc.controller, lang)
	if err != nil {
		return err
	}
	logger.Debug("word fetched", zap.Stringer("status", st.Status), zap.String("lang", lang))

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(st.Word)
	}
	printState(cmd.OutOrStdout(), st)
	return nil
}

// fetchFirst initializes ctrl for lang and waits for the first completed fetch.
func fetchFirst(ctx context.Context, ctrl *wordfetch.Controller, lang string) (wordfetch.State, error) {
	if err := ctrl.Initialize(lang); err != nil {
		return wordfetch.State{}, err
	}
	for {
		select {
		case st, ok := <-ctrl.Updates():
			if !ok {
				return wordfetch.State{}, wordfetch.ErrClosed
			}
			if st.Status == wordfetch.StatusSuccess || st.Status == wordfetch.StatusError {
				return st, nil
			}
		case <-ctx.Done():
			return wordfetch.State{}, fmt.Errorf("waiting for word: %w", ctx.Err())
		}
	}
}

// printState prints the word card in plain text.
func printState(w io.Writer, st wordfetch.State) {
	if st.Word == nil {
		return
	}
	rec := st.Word

	line := formatWord(rec.Word)
	if rec.HasPhonetics() {
		line += "  " + formatPhonetics("/"+rec.Phonetics+"/")
	}
	fmt.Fprintln(w, line)

	sub := strings.ToUpper(rec.Language)
	if rec.EnglishTranslation != "" {
		sub += " · " + rec.EnglishTranslation
	}
	fmt.Fprintln(w, formatMuted(sub))
	fmt.Fprintln(w, formatMuted(strings.Repeat("─", min(termWidth(), 48))))

	fmt.Fprintln(w, formatHeader("Meaning"))
	for _, meaning := range rec.Meanings {
		fmt.Fprintf(w, "  │ %s\n", meaning)
	}

	if len(rec.Remarks) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, formatHeader("Remarks"))
		for _, remark := range rec.Remarks {
			fmt.Fprintf(w, "  %s\n", remark)
		}
	}

	if st.Status == wordfetch.StatusSuccess {
		fmt.Fprintln(w)
		fmt.Fprintln(w, formatMuted("Updated at "+st.LastFetch.Format("3:04:05 PM")))
	}
}
