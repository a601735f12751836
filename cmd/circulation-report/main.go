// Package main provides a report tool printing the loan history of one library user
// from the configured circulation journal as structured log lines.
//
// Usage:
//
//	circulation-report -user U1
//	circulation-report -user U1 -demo   # journal a small demo circulation session first
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AntonStoeckl/library-circulation-go/circulation/coordinator"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/loanhistory"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/config"
)

var errMissingUser = errors.New("the -user flag is required")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "circulation-report:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("circulation-report", flag.ContinueOnError)
	userID := flags.String("user", "", "ID of the user to report on")
	demo := flags.Bool("demo", false, "journal a demo circulation session before reporting")
	envFile := flags.String("env-file", "", ".env file to load (default: .env in the working directory, if present)")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *userID == "" {
		return errMissingUser
	}

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}

	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: cfg.LogLevel}))

	journal, err := config.OpenJournal(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := journal.Close(); closeErr != nil {
			logger.Warn("closing the journal failed", "error", closeErr.Error())
		}
	}()

	if *demo {
		metrics, metricsErr := shell.NewPrometheusMetrics(prometheus.NewRegistry())
		if metricsErr != nil {
			return metricsErr
		}

		recorder := shell.NewRecorder(
			journal,
			shell.WithDesk(cfg.Desk),
			shell.WithLogger(logger),
			shell.WithMetrics(metrics),
		)
		if err = journalDemoSession(ctx, cfg, recorder); err != nil {
			return err
		}
	}

	history, err := loanhistory.NewQueryHandler(journal, loanhistory.WithLogging(logger)).
		Handle(ctx, loanhistory.BuildQuery(*userID))
	if err != nil {
		return err
	}

	report(logger, history)

	return nil
}

func report(logger *slog.Logger, history loanhistory.LoanHistory) {
	for _, loan := range history.Loans {
		attrs := []any{
			"user_id", history.UserID,
			"loan_id", loan.LoanID,
			"item_id", loan.ItemID,
			"item_type", loan.ItemType,
			"checked_out_on", loan.CheckedOutOn.Format(time.DateOnly),
			"checkout_desk", loan.CheckoutDesk,
			"due_on", loan.DueOn.Format(time.DateOnly),
			"renewals", loan.Renewals,
			"denied_renewals", loan.DeniedRenewals,
		}

		if !loan.IsActive() {
			attrs = append(attrs,
				"returned_on", loan.ReturnedOn.Format(time.DateOnly),
				"return_desk", loan.ReturnDesk,
				"days_late", loan.DaysLate,
				"fine", loan.Fine,
			)
		}

		logger.Info("loan", attrs...)
	}

	logger.Info(
		"loan history",
		"user_id", history.UserID,
		"loans", len(history.Loans),
		"active", history.ActiveCount,
		"fines_assessed", history.FinesAssessed,
		"fines_paid", history.FinesPaid,
		"outstanding_fines", history.OutstandingFines,
	)
}

// journalDemoSession runs a short circulation session with the configured policy.
func journalDemoSession(ctx context.Context, cfg config.Config, recorder *shell.Recorder) error {
	system, err := coordinator.NewSystem("Demo Library", coordinator.WithPolicy(cfg.Policy()))
	if err != nil {
		return err
	}

	users := []struct{ id, name, role string }{
		{"U1", "alice smith", "Student"},
		{"U2", "john roe", "Faculty"},
	}
	for _, u := range users {
		user, buildErr := core.BuildUser(u.id, u.name, u.role)
		if buildErr != nil {
			return buildErr
		}

		if err = system.AddUser(user); err != nil {
			return err
		}
	}

	book, err := core.BuildBook("B1", "The Left Hand of Darkness", []string{"ursula k. le guin"}, []string{"fiction"}, 1)
	if err != nil {
		return err
	}

	dvd, err := core.BuildDVD("D1", "Metropolis", []string{"fritz lang"}, nil, 1)
	if err != nil {
		return err
	}

	for _, item := range []*core.Item{book, dvd} {
		if err = system.AddItem(item); err != nil {
			return err
		}
	}

	start := core.Date(2025, time.January, 6)

	if _, err = system.CheckoutItem("L1", "U1", "B1", start); err != nil {
		return err
	}

	if _, err = system.CheckoutItem("L2", "U1", "D1", start); err != nil {
		return err
	}

	if _, err = system.PlaceHold("H1", "U2", "B1", start.AddDate(0, 0, 1), start.AddDate(0, 0, 30)); err != nil {
		return err
	}

	// denied, U2 holds the book
	if _, err = system.RenewLoan("L1", "U1", start.AddDate(0, 0, 10)); err != nil {
		return err
	}

	if _, err = system.ReturnItem("L2", start.AddDate(0, 0, 12)); err != nil {
		return err
	}

	if _, err = system.ReturnItem("L1", start.AddDate(0, 0, 16)); err != nil {
		return err
	}

	if _, err = system.CheckoutItem("L3", "U2", "B1", start.AddDate(0, 0, 16)); err != nil {
		return err
	}

	if _, err = system.PayFine("U1", 1); err != nil {
		return err
	}

	return recorder.RecordFrom(ctx, system)
}
