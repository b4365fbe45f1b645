package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockhttp/pkg/cli/internal/output"
	"github.com/getmockd/mockhttp/pkg/config"
	"github.com/getmockd/mockhttp/pkg/engine"
)

// ValidateResult is the outcome for one fixture file.
type ValidateResult struct {
	Path         string           `json:"path"`
	Valid        bool             `json:"valid"`
	Expectations int              `json:"expectations"`
	Error        string           `json:"error,omitempty"`
	Problems     []config.Problem `json:"problems,omitempty"`
}

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [fixture...]",
		Short: "Check fixture files without serving them",
		Long: `Validate parses every fixture file, checks it against the fixture schema and
registers its expectations on a scratch session, reporting each file separately.`,
		Example: `  # Validate explicit files
  mockhttp validate users.yaml orders.json

  # Validate everything under fixtures/
  mockhttp validate -f 'fixtures/**/*.yaml'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns, err := a.fixturePatterns(args)
			if err != nil {
				return err
			}
			paths, err := config.Resolve(patterns...)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no fixture files match %v", patterns)
			}

			results := make([]ValidateResult, 0, len(paths))
			invalid := 0
			for _, p := range paths {
				r := a.validateFile(p)
				if !r.Valid {
					invalid++
				}
				results = append(results, r)
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				if err := output.JSON(w, results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					if r.Valid {
						fmt.Fprintf(w, "ok    %s (%d expectations)\n", r.Path, r.Expectations)
						continue
					}
					fmt.Fprintf(w, "FAIL  %s\n      %s\n", r.Path, r.Error)
					for _, p := range r.Problems {
						fmt.Fprintf(w, "      - %s\n", p)
					}
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d fixture files are invalid", invalid, len(results))
			}
			return nil
		},
	}
}

func (a *app) validateFile(path string) ValidateResult {
	r := ValidateResult{Path: path}
	fail := func(err error) ValidateResult {
		r.Error = err.Error()
		var se *config.SchemaError
		if errors.As(err, &se) {
			r.Problems = se.Problems
		}
		return r
	}

	f, err := config.LoadFile(path)
	if err != nil {
		return fail(err)
	}
	exps, err := f.ToExpectations()
	if err != nil {
		return fail(err)
	}
	if _, err := config.RegisterAll(engine.New(), exps); err != nil {
		return fail(err)
	}

	r.Valid = true
	r.Expectations = len(exps)
	return r
}
