package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/komsit37/quotedash/pkg/dash/pipeline"
	"github.com/komsit37/quotedash/pkg/dash/provider"
	"github.com/komsit37/quotedash/pkg/dash/render"
	"github.com/komsit37/quotedash/pkg/dash/resolve"
	"github.com/komsit37/quotedash/pkg/dash/source"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	analyze := newAnalyzeCmd()

	root := &cobra.Command{
		Use:   "quotedash [name|ticker]",
		Short: "Single-ticker stock dashboard: metrics, recommendation, candles and news",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return analyze.RunE(cmd, args)
		},
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (YAML)")
	pf.Duration("timeout", 10*time.Second, "timeout per provider request")
	pf.String("symbols", "", "extra name→symbol table: YAML file or directory")
	pf.String("proxy", "", "HTTP proxy URL for provider requests")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("verbose", "v", false, "log provider requests and suppressed results")
	for _, key := range []string{"timeout", "symbols", "proxy", "verbose"} {
		_ = viper.BindPFlag(key, pf.Lookup(key))
	}

	// analyze's flags also work on the root command.
	root.Flags().AddFlagSet(analyze.Flags())

	root.AddCommand(analyze, newServeCmd(), newWatchCmd(), newSnapshotCmd(), newSymbolsCmd())
	return root
}

func initConfig(cfgFile string) error {
	viper.SetEnvPrefix("QUOTEDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("color", true)
	viper.SetDefault("format", "table")
	viper.SetDefault("addr", ":8501")
	viper.SetDefault("schedule", "@every 5m")

	if cfgFile == "" {
		return nil
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", cfgFile, err)
	}
	if viper.GetBool("verbose") {
		log.Printf("[INFO] using config %s", viper.ConfigFileUsed())
	}
	return nil
}

// newRunner wires the resolver and the Yahoo fetcher from the current
// configuration.
func newRunner(ctx context.Context) (*pipeline.Runner, error) {
	resolver, err := loadResolver(ctx)
	if err != nil {
		return nil, err
	}

	yahoo := provider.NewYahoo(viper.GetDuration("timeout"), viper.GetString("proxy"))
	yahoo.Verbose = viper.GetBool("verbose")

	return &pipeline.Runner{
		Resolver: resolver,
		Fetcher:  yahoo,
		Period:   provider.DefaultPeriod,
		Verbose:  viper.GetBool("verbose"),
	}, nil
}

// loadResolver extends the built-in table with --symbols, if set.
func loadResolver(ctx context.Context) (*resolve.Resolver, error) {
	path := viper.GetString("symbols")
	if path == "" {
		return resolve.Default(), nil
	}
	var src source.Source = source.YAMLSource{}
	extra, err := src.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load symbols %s: %w", path, err)
	}
	return resolve.New(extra), nil
}

// colorEnabled honours --no-color, QUOTEDASH_COLOR and the config file.
func colorEnabled(cmd *cobra.Command) bool {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return viper.GetBool("color")
}

// openOutput returns stdout, or the --out file when set.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

func userFacing(err error) error {
	var uerr *resolve.UserInputError
	var ferr *pipeline.FetchError
	if errors.As(err, &uerr) || errors.As(err, &ferr) {
		return err
	}
	return fmt.Errorf("quotedash: %w", err)
}

func rendererFor(format string) (render.Renderer, error) {
	if format == "" {
		format = viper.GetString("format")
	}
	return render.New(format)
}
