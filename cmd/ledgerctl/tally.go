package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gookit/color"

	emodels "campusvote/internal/election/models"
	lmodels "campusvote/internal/ledger/models"
	id "campusvote/pkg/domain"
)

type electionLister interface {
	ListElections(ctx context.Context) ([]emodels.ElectionSummary, error)
}

type voteCounter interface {
	CountVotes(ctx context.Context, electionID id.ElectionID) ([]lmodels.CandidateTally, error)
}

func printTallies(ctx context.Context, elections electionLister, counter voteCounter, out io.Writer) error {
	list, err := elections.ListElections(ctx)
	if err != nil {
		return fmt.Errorf("list elections: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "no elections")
		return nil
	}
	for _, e := range list {
		results, err := counter.CountVotes(ctx, e.ID)
		if err != nil {
			return fmt.Errorf("tally %s: %w", e.Name, err)
		}
		total := 0
		for _, r := range results {
			total += r.VoteCount
		}
		color.Fprintf(out, "<info>%s</> (%s): <suc>%d</> votes\n", e.Name, e.ID, total)
		for _, r := range results {
			fmt.Fprintf(out, "\t%-30s %d\n", r.CandidateName, r.VoteCount)
		}
	}
	return nil
}
