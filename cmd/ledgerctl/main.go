// ledgerctl is the offline companion to the campusvote server. It talks to
// the same PostgreSQL database and runs the checks an election officer needs
// without going through the HTTP API:
//
//	ledgerctl verify             replay the hash chain and report the first break
//	ledgerctl tally              print per-election results
//	ledgerctl grant-admin --roll 21CS042 [--revoke]
//
// verify exits with status 2 when the chain is broken so scripts can tell an
// integrity failure apart from a connection problem.
package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"
	"github.com/spf13/pflag"

	"campusvote/internal/election/adapters"
	electionpg "campusvote/internal/election/store/postgres"
	ledgerservice "campusvote/internal/ledger/service"
	ledgerpg "campusvote/internal/ledger/store/postgres"
	"campusvote/internal/platform/config"
	"campusvote/internal/platform/postgres"
	voterpg "campusvote/internal/voter/store/postgres"
	"campusvote/pkg/platform/audit/publisher"
	auditpg "campusvote/pkg/platform/audit/store/postgres"
)

const usage = `usage: ledgerctl [flags] <verify|tally|grant-admin>

flags:
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		var coded interface{ ExitCode() int }
		if errors.As(err, &coded) {
			color.Printf("<error>FAILED</>\t%v\n", err)
			os.Exit(coded.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "ledgerctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		databaseURL string
		roll        string
		revoke      bool
		quiet       bool
	)
	flagSet := pflag.NewFlagSet("ledgerctl", pflag.ContinueOnError)
	flagSet.StringVar(&databaseURL, "database-url", "", "PostgreSQL URL (default: $DATABASE_URL)")
	flagSet.StringVar(&roll, "roll", "", "roll number of the voter to promote (grant-admin)")
	flagSet.BoolVar(&revoke, "revoke", false, "remove admin rights instead of granting them (grant-admin)")
	flagSet.BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar (verify)")
	flagSet.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return errors.New("exactly one command is required")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if databaseURL != "" {
		cfg.Database.URL = databaseURL
	}
	if cfg.Database.URL == "" {
		return errors.New("no database: set DATABASE_URL or pass --database-url")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ledgerStore := ledgerpg.New(db)
	elections := electionpg.New(db)

	switch cmd := flagSet.Arg(0); cmd {
	case "verify":
		out := os.Stdout
		report, err := verifyChain(ctx, ledgerStore, out, !quiet)
		if err != nil {
			return err
		}
		return printChainReport(out, report)
	case "tally":
		ledger := ledgerservice.New(ledgerStore, ledgerpg.NewSequencer(db, cfg.Ledger.TxTimeout),
			ledgerservice.WithCandidateDirectory(adapters.NewCandidateDirectory(elections)),
		)
		return printTallies(ctx, elections, ledger, os.Stdout)
	case "grant-admin":
		voters := voterpg.New(db)
		auditor := publisher.NewPublisher(auditpg.New(db))
		// The role change and its audit row commit together.
		var out bytes.Buffer
		err := postgres.NewTxRunner(db).Run(ctx, func(ctx context.Context, _ *sql.Tx) error {
			out.Reset()
			return grantAdmin(ctx, voters, auditor, roll, !revoke, &out)
		})
		if err != nil {
			return err
		}
		_, err = out.WriteTo(os.Stdout)
		return err
	default:
		flagSet.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}
