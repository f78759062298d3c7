package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	converter "go-currency-converter"
	"go-currency-converter/calc"
	"go-currency-converter/config"
	"go-currency-converter/exchange"
	"go-currency-converter/frankfurter"
	"go-currency-converter/http"
	"go-currency-converter/logging"
)

var (
	cfg    *config.Config
	logger log.Logger
)

// Execute runs the root command against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sekidr",
		Short:        "SEK/IDR currency converter with a keypad calculator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			logger = logging.New(os.Stderr, cfg.LogLevel)
			return nil
		},
	}

	root.AddCommand(serveCmd(), evalCmd(), convertCmd(), tableCmd(), rateCmd())
	return root
}

// newExchangeService wires the rate provider and its decorators into an exchange service.
// The caching decorator refreshes in the background until ctx is done.
func newExchangeService(ctx context.Context) exchange.Service {
	rates := frankfurter.NewService(cfg.RateApiUrl, cfg.HttpTimeout)
	rates = frankfurter.NewLoggingService(log.With(logger, "component", "frankfurter_rest"), rates)
	rates = frankfurter.NewCachingService(ctx, cfg.RefreshInterval, log.With(logger, "component", "frankfurter_cache"), rates)

	amounts := make([]converter.Amount, 0, len(cfg.FixedAmounts))
	for _, a := range cfg.FixedAmounts {
		amounts = append(amounts, converter.Amount(a))
	}

	s := exchange.NewService(rates, converter.Rate(cfg.DefaultRate), amounts)
	s = exchange.NewLoggingService(log.With(logger, "component", "exchange"), s)

	if _, err := s.Refresh(ctx); err != nil {
		level.Warn(logger).Log("msg", "using default rate", "rate", cfg.DefaultRate, "err", err)
	}
	return s
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := http.NewServer(newExchangeService(ctx), log.With(logger, "component", "http"))

			level.Info(logger).Log("msg", "listening", "addr", cfg.Addr())
			return server.Start(ctx, cfg.Addr())
		},
	}
}

func evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a keypad expression left to right",
		Args:  cobra.MinimumNArgs(1),

		// "-5+3" is an expression, not a flag
		DisableFlagParsing: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), calc.Evaluate(strings.Join(args, "")))
			return err
		},
	}
}

func convertCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "convert <amount>",
		Short: "Convert an amount between SEK and IDR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(calc.Evaluate(args[0]), 64)
			if err != nil {
				return fmt.Errorf("amount %q: %w", args[0], err)
			}
			source := converter.Currency(strings.ToUpper(from))

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			ex, err := newExchangeService(ctx).Convert(ctx, converter.Amount(amount), source, source.Other())
			if err != nil {
				return err
			}
			return printConversion(cmd.OutOrStdout(), converter.Amount(amount), source, ex)
		},
	}

	cmd.Flags().StringVar(&from, "from", string(converter.SEK), "currency of the amount (SEK or IDR)")
	return cmd
}

func printConversion(w io.Writer, amount converter.Amount, from converter.Currency, ex converter.Exchanged) error {
	to := from.Other()
	_, err := fmt.Fprintf(w, "%v %v = %v %v\n", exchange.Format(amount, from), from, exchange.Format(ex.Amount, to), to)
	return err
}

func tableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the fixed SEK amounts in IDR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			return printTable(cmd.OutOrStdout(), newExchangeService(ctx).Table(ctx))
		},
	}
}

func printTable(w io.Writer, rows []exchange.Row) error {
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%6v SEK  %14v IDR\n", float64(r.SEK), exchange.FormatIDR(r.IDR)); err != nil {
			return err
		}
	}
	return nil
}

func rateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate",
		Short: "Print the latest exchange rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			return printRate(cmd.OutOrStdout(), newExchangeService(ctx).Rate(ctx))
		},
	}
}

func printRate(w io.Writer, q converter.Quote) error {
	rate := q.Rates[converter.IDR]
	_, err := fmt.Fprintf(w,
		"Last updated: %v\n1 SEK = %v IDR\n1 IDR = %v SEK\n",
		q.Date.Format("2006-01-02"),
		exchange.FormatIDR(converter.Amount(rate)),
		exchange.FormatInverse(1/rate),
	)
	return err
}
