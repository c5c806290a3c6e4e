// marketctl calls the market HTTP API from a terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"rp_market/pkg/apiclient"
	"rp_market/pkg/contextx"
	"rp_market/pkg/httpx"
	"rp_market/pkg/logx"
	"rp_market/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	defaultAddr    = "http://localhost:8080/api/market"
	requestTimeout = 15 * time.Second
	logFieldMaxLen = 4096
)

type globalFlags struct {
	addr    string
	userID  string
	verbose bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:          "marketctl",
		Short:        "Role-play market client",
		SilenceUsage: true,
	}

	addr := os.Getenv("MARKET_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	root.PersistentFlags().StringVar(&flags.addr, "addr", addr, "market API base URL")
	root.PersistentFlags().StringVar(&flags.userID, "user", "", "value for the X-User-Id header")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log HTTP round trips to stderr")

	root.AddCommand(
		newCatalogCmd(flags, out),
		newSnapshotCmd(flags, out),
		newQuoteCmd(flags, out),
		newTradeCmd(flags, out),
	)

	return root
}

func newCatalogCmd(flags *globalFlags, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List tradable items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := commandContext(cmd, flags)
			defer cancel()

			items, err := newMarket(flags).Catalog(ctx)
			if err != nil {
				return fmt.Errorf("market.Catalog: %w", err)
			}

			return printJSON(out, items)
		},
	}
}

func newSnapshotCmd(flags *globalFlags, out io.Writer) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Show market state and recent trades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := commandContext(cmd, flags)
			defer cancel()

			snapshot, err := newMarket(flags).Snapshot(ctx, recent)
			if err != nil {
				return fmt.Errorf("market.Snapshot: %w", err)
			}

			return printJSON(out, snapshot)
		},
	}

	cmd.Flags().IntVar(&recent, "recent", -1, "number of recent trades, server default when negative")

	return cmd
}

func newQuoteCmd(flags *globalFlags, out io.Writer) *cobra.Command {
	var (
		qty     float64
		country string
	)

	cmd := &cobra.Command{
		Use:   "quote ITEM",
		Short: "Price an order without trading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, flags)
			defer cancel()

			quantity := rest.Quantity(qty)

			quote, err := newMarket(flags).Quote(ctx, rest.QuoteRequest{
				ItemID:    args[0],
				Qty:       &quantity,
				CountryID: country,
			})
			if err != nil {
				return fmt.Errorf("market.Quote: %w", err)
			}

			return printJSON(out, quote)
		},
	}

	cmd.Flags().Float64Var(&qty, "qty", 1, "order quantity")
	cmd.Flags().StringVar(&country, "country", "", "country id for the resource discount")

	return cmd
}

func newTradeCmd(flags *globalFlags, out io.Writer) *cobra.Command {
	var (
		qty     float64
		country string
		actor   string
	)

	cmd := &cobra.Command{
		Use:       "trade buy|sell ITEM",
		Short:     "Execute a trade",
		Args:      cobra.ExactArgs(2), //nolint:mnd
		ValidArgs: []string{"buy", "sell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, flags)
			defer cancel()

			tx, err := newMarket(flags).Trade(ctx, rest.TradeRequest{
				Actor:     actor,
				ItemID:    args[1],
				Qty:       rest.Quantity(qty),
				CountryID: country,
				Side:      strings.TrimSpace(args[0]),
			})
			if err != nil {
				return fmt.Errorf("market.Trade: %w", err)
			}

			return printJSON(out, tx)
		},
	}

	cmd.Flags().Float64Var(&qty, "qty", 1, "trade quantity")
	cmd.Flags().StringVar(&country, "country", "", "country id for the resource discount")
	cmd.Flags().StringVar(&actor, "actor", "", "actor recorded in the ledger")

	return cmd
}

func commandContext(cmd *cobra.Command, flags *globalFlags) (context.Context, context.CancelFunc) {
	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))

	// при -v trace id уходит в X-Trace-Id и ищется в логах сервера
	traceID := contextx.NewTraceID()
	ctx := contextx.WithTraceID(contextx.WithLogger(cmd.Context(), log), traceID)

	log.Debug("request", slog.String(logx.FieldTraceID, traceID.String()))

	return context.WithTimeout(ctx, requestTimeout)
}

func newMarket(flags *globalFlags) apiclient.Market {
	transport := http.DefaultTransport
	if flags.verbose {
		transport = httpx.NewLoggingRoundTripper(
			transport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(logFieldMaxLen),
		)
	}

	client := apiclient.NewAPIClient(
		strings.TrimRight(strings.TrimSpace(flags.addr), "/"),
		&http.Client{Transport: transport, Timeout: requestTimeout}, //nolint:exhaustruct
	)

	return apiclient.NewMarket(client).WithUserID(flags.userID)
}

func printJSON(out io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	if _, err = fmt.Fprintln(out, string(b)); err != nil {
		return fmt.Errorf("fmt.Fprintln: %w", err)
	}

	return nil
}
