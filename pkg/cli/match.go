package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockhttp/pkg/adapter"
	"github.com/getmockd/mockhttp/pkg/cli/internal/flags"
	"github.com/getmockd/mockhttp/pkg/cli/internal/output"
	"github.com/getmockd/mockhttp/pkg/mock"
)

// MatchResult is the JSON output of the match command.
type MatchResult struct {
	Matched       bool            `json:"matched"`
	ExpectationID string          `json:"expectationId,omitempty"`
	Label         string          `json:"label,omitempty"`
	Response      *mock.Response  `json:"response,omitempty"`
	Error         string          `json:"error,omitempty"`
	NearMisses    []mock.NearMiss `json:"nearMisses,omitempty"`
}

type matchFlags struct {
	method  string
	headers flags.Headers
	data    string
}

func newMatchCommand(a *app) *cobra.Command {
	var mf matchFlags

	cmd := &cobra.Command{
		Use:   "match <url>",
		Short: "Dry-run a request against fixtures",
		Long: `Match resolves one request against the loaded fixtures and prints the
winning expectation and its response. When nothing matches it prints the
near misses for the same URL and exits non-zero.

The request carries exactly the headers given with -H and has no body unless
--data is set. --data is parsed as JSON when possible and used as raw text
otherwise.`,
		Example: `  mockhttp match -f fixtures.yaml https://api.example.com/users

  mockhttp match -f fixtures.yaml -X POST -H 'Content-Type: application/json' \
    --data '{"name":"alice"}' https://api.example.com/users`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns, err := a.fixturePatterns(nil)
			if err != nil {
				return err
			}
			s, _, err := a.loadSession(patterns)
			if err != nil {
				return err
			}

			req := mock.Request{
				URL:     args[0],
				Method:  mf.method,
				Headers: mf.headers,
			}
			if cmd.Flags().Changed("data") {
				req.Body = adapter.ParseBody([]byte(mf.data))
			}

			resp, err := s.Dispatch(req)
			w := cmd.OutOrStdout()

			var nm *mock.NoMatchError
			switch {
			case errors.As(err, &nm):
				if a.jsonOutput {
					if jerr := output.JSON(w, MatchResult{Error: nm.Error(), NearMisses: nm.NearMisses}); jerr != nil {
						return jerr
					}
				} else {
					fmt.Fprintln(w, nm.Detail())
				}
				return nm
			case err != nil:
				return err
			}

			result := MatchResult{Matched: true, Response: resp}
			if entries := s.Requests(nil); len(entries) > 0 {
				result.ExpectationID = entries[0].MatchedID
				if e, ok := s.Expectation(result.ExpectationID); ok {
					result.Label = e.Label()
				}
			}

			if a.jsonOutput {
				return output.JSON(w, result)
			}
			return printMatch(w, result)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&mf.method, "method", "X", "GET", "Request method")
	f.VarP(&mf.headers, "header", "H", "Request header as 'Name: value' (repeatable)")
	f.StringVarP(&mf.data, "data", "d", "", "Request body")

	return cmd
}

func printMatch(w io.Writer, r MatchResult) error {
	fmt.Fprintf(w, "matched %s (%s)\n", r.Label, r.ExpectationID)

	tw := output.Table(w)
	fmt.Fprintf(tw, "status\t%d\n", r.Response.StatusCode)
	names := make([]string, 0, len(r.Response.Headers))
	for name := range r.Response.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(tw, "header\t%s: %s\n", name, r.Response.Headers[name])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	body, err := r.Response.JSON()
	if err != nil {
		return fmt.Errorf("encoding response body: %w", err)
	}
	if len(body) > 0 {
		fmt.Fprintf(w, "\n%s\n", body)
	}
	return nil
}
