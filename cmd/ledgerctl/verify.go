package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"
	"github.com/schollz/progressbar/v3"

	"campusvote/internal/ledger/models"
)

// chain is the read side of the ledger store that verification needs.
type chain interface {
	Count(ctx context.Context) (int, error)
	Walk(ctx context.Context, fn func(rec models.VoteRecord) bool) error
}

// integrityError carries a broken chain out of run with its own exit status.
type integrityError struct {
	report models.ChainReport
}

func (e integrityError) Error() string {
	return fmt.Sprintf("ledger broken at position %d (%s)", e.report.Position, e.report.Reason)
}

func (integrityError) ExitCode() int { return 2 }

// verifyChain replays every record in timestamp order through a
// ChainVerifier. The walk stops at the first break.
func verifyChain(ctx context.Context, ledger chain, out io.Writer, showProgress bool) (models.ChainReport, error) {
	total, err := ledger.Count(ctx)
	if err != nil {
		return models.ChainReport{}, fmt.Errorf("count ledger records: %w", err)
	}

	var bar *progressbar.ProgressBar
	if showProgress && total > 0 {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription("replaying ledger"),
			progressbar.OptionShowCount(),
		)
	}

	verifier := models.NewChainVerifier()
	err = ledger.Walk(ctx, func(rec models.VoteRecord) bool {
		ok := verifier.Next(rec)
		if bar != nil {
			_ = bar.Add(1)
		}
		return ok
	})
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(out)
	}
	if err != nil {
		return models.ChainReport{}, fmt.Errorf("walk ledger: %w", err)
	}
	return verifier.Report(time.Now().UTC()), nil
}

func printChainReport(out io.Writer, report models.ChainReport) error {
	color.Fprintf(out, "Records : <suc>%d</>\n", report.Length)
	if report.Valid {
		color.Fprintf(out, "Tail    : %s\n", report.TailHash)
		color.Fprintf(out, "<suc>OK</>\tchain is intact\n")
		return nil
	}
	color.Fprintf(out, "Vote    : %s\n", report.BrokenAt)
	color.Fprintf(out, "Expected: %s\n", report.Expected)
	color.Fprintf(out, "Found   : %s\n", report.Found)
	return integrityError{report: report}
}
