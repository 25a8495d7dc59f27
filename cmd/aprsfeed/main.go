// aprsfeed decodes APRS position reports from an APRS-IS server or stdin.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/APRSCN/aprspos"
	"github.com/APRSCN/aprspos/client"
	"github.com/APRSCN/aprspos/config"
	"github.com/APRSCN/aprspos/metrics"
	"github.com/APRSCN/aprspos/parser"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process globals, it returns the exit code
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("aprsfeed", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	configPath := flags.StringP("config", "c", "aprsfeed.yaml", "Configuration file.")
	host := flags.String("server", "", "APRS-IS server host.")
	port := flags.IntP("port", "p", 0, "APRS-IS server port.")
	callsign := flags.String("callsign", "", "Login callsign.")
	passcode := flags.String("passcode", "", "Login passcode, receive only when empty.")
	filter := flags.StringP("filter", "f", "", "APRS-IS server side filter.")
	useStdin := flags.Bool("stdin", false, "Read lines from stdin instead of the server.")
	metricsAddr := flags.String("metrics", "", "Serve Prometheus metrics on this address.")
	logLevel := flags.String("log-level", "", "Log level: debug, info, warn, error.")
	timeFormat := flags.String("time-format", "", "strftime format for timestamps.")
	utm := flags.Bool("utm", false, "Print UTM coordinates.")
	help := flags.BoolP("help", "h", false, "Display help text.")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: aprsfeed [options]\n\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *help {
		flags.Usage()
		return 0
	}

	cfg, err := config.Load(*configPath, !flags.Changed("config"))
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %s\n", err)
		return 1
	}

	// Flags win over the file
	overrideString(&cfg.Server.Host, *host)
	overrideString(&cfg.Server.Callsign, *callsign)
	overrideString(&cfg.Server.Passcode, *passcode)
	overrideString(&cfg.Server.Filter, *filter)
	overrideString(&cfg.Log.Level, *logLevel)
	overrideString(&cfg.Output.TimeFormat, *timeFormat)
	overrideString(&cfg.Metrics.Listen, *metricsAddr)
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *utm {
		cfg.Output.UTM = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %s\n", err)
		return 1
	}

	logger, err := aprspos.NewLoggerWithLevel(stderr, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid log level: %s\n", err)
		return 1
	}

	out, err := newPrinter(cfg.Output.TimeFormat, cfg.Output.UTM)
	if err != nil {
		logger.Error(nil, err)
		return 1
	}

	drop, err := client.NewLineFilter(cfg.Server.Drop)
	if err != nil {
		logger.Error(aprspos.Fields{"drop": cfg.Server.Drop}, "Invalid drop pattern:", err)
		return 1
	}

	m := metrics.New()
	if cfg.Metrics.Listen != "" {
		server := &http.Server{Addr: cfg.Metrics.Listen, Handler: m.Handler(), ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error(aprspos.Fields{"listen": cfg.Metrics.Listen}, "Metrics server failed:", err)
			}
		}()
		defer server.Close()
	}

	f := &feed{logger: logger, metrics: m, printer: out, stdout: stdout}

	if *useStdin {
		err = client.ScanLines(ctx, stdin, logger, func(line string) {
			if !drop.Match(line) {
				f.handle(line)
			}
		})
	} else {
		c := client.NewClient(
			cfg.Server.Callsign, cfg.Server.Passcode,
			cfg.Server.Host, cfg.Server.Port,
			client.WithLogger(logger),
			client.WithFilter(cfg.Server.Filter),
			client.WithLineFilter(drop),
			client.WithHandler(f.handle),
		)
		err = c.Run(ctx)
	}

	f.summary()

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(nil, "Feed stopped:", err)
		return 1
	}
	return 0
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// feed decodes lines and keeps running totals
type feed struct {
	logger  aprspos.Logger
	metrics *metrics.Metrics
	printer *printer
	stdout  io.Writer

	mu     sync.Mutex
	counts [3]uint64
}

// handle decodes one line. A line that fails to decode is reported and the feed goes on.
func (f *feed) handle(line string) {
	received := time.Now()
	packet, err := parser.Parse(line, received)
	f.metrics.Observe(packet, err)

	outcome := parser.ClassifyOutcome(err)
	f.mu.Lock()
	f.counts[outcome]++
	f.mu.Unlock()

	switch outcome {
	case parser.OutcomeDecoded:
		fmt.Fprintln(f.stdout, f.printer.format(packet, received))
	case parser.OutcomeFailed:
		f.logger.Warn(aprspos.Fields{"from": packet.From, "raw": line}, "Packet received but unparseable:", err)
	default:
		f.logger.Debug(aprspos.Fields{"from": packet.From, "type": parser.DataTypeName(packet.Type)}, "Packet not decoded:", err)
	}
}

// summary logs the totals
func (f *feed) summary() {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := f.counts[parser.OutcomeDecoded] + f.counts[parser.OutcomeFailed] + f.counts[parser.OutcomeUnknown]
	f.logger.Info(aprspos.Fields{
		"total":   humanize.Comma(int64(total)),
		"decoded": humanize.Comma(int64(f.counts[parser.OutcomeDecoded])),
		"failed":  humanize.Comma(int64(f.counts[parser.OutcomeFailed])),
		"unknown": humanize.Comma(int64(f.counts[parser.OutcomeUnknown])),
	}, "Feed summary")
}
