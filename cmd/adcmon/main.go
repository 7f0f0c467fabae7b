package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quietlab/adcmon/pkg/adc"
	"github.com/quietlab/adcmon/pkg/config"
	"github.com/quietlab/adcmon/pkg/display"
	"github.com/quietlab/adcmon/pkg/echo"
	"github.com/quietlab/adcmon/pkg/sampling"
)

var (
	flagConfig string
	flagPort   string
	flagMock   bool
	flagGUI    bool
	flagDebug  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "adcmon",
		Short: "ADC monitor - samples an analog input and serves an interactive echo console",
		Long: `adcmon periodically samples an analog input streamed by an attached
board, averages each batch of readings in a background worker, and runs an
interactive console on stdin/stdout: every line is echoed back, and typing
"avg" reports the latest published average instead.

Use --mock to run against a simulated waveform without hardware.`,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&flagConfig, "config", "config.yaml", "Configuration file path")
	rootCmd.Flags().StringVar(&flagPort, "port", "", "Serial port override (e.g. /dev/ttyACM0)")
	rootCmd.Flags().BoolVar(&flagMock, "mock", false, "Use a simulated analog source instead of a serial port")
	rootCmd.Flags().BoolVar(&flagGUI, "gui", false, "Render dispatched lines to a window instead of the terminal")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger(flagDebug)
	defer logger.Sync()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if flagPort != "" {
		cfg.Serial.Port = flagPort
	}

	var src adc.Source
	if flagMock {
		src = adc.NewMock(&cfg.Mock)
	} else {
		src = adc.NewSerial(cfg.Serial.Port, cfg.Serial.BaudRate, logger)
	}
	if err := src.Connect(); err != nil {
		logger.Fatal("failed to connect analog source", zap.Error(err))
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	buf := sampling.NewBuffer(cfg.Sampling.SlotSize)
	box := sampling.NewMailbox()
	avg := sampling.NewSharedAverage()

	sampler := sampling.NewSampler(src, buf, box, cfg.Sampling.Period, logger)
	averager := sampling.NewAverager(buf, box, avg, logger)

	go sampler.Run(ctx)
	go averager.Run()
	defer box.Close()

	if flagGUI {
		return runGUI(ctx, cfg, avg, logger)
	}

	disp := display.NewTerminal(os.Stderr)
	console := echo.New(echo.NewReaderInput(os.Stdin), os.Stdout, disp, avg, cfg.Console, logger)

	return console.Run(ctx)
}

// runGUI runs the console against a window sink. Fyne owns the main
// goroutine, so the console moves to a background one.
func runGUI(ctx context.Context, cfg *config.Config, avg *sampling.SharedAverage, logger *zap.Logger) error {
	application := app.NewWithID("com.quietlab.adcmon")

	window := application.NewWindow("ADC Monitor")
	window.Resize(fyne.NewSize(320, 160))
	window.CenterOnScreen()

	screen := display.NewScreen(window)
	console := echo.New(echo.NewReaderInput(os.Stdin), os.Stdout, screen, avg, cfg.Console, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- console.Run(ctx)
		fyne.Do(application.Quit)
	}()
	go func() {
		<-ctx.Done()
		fyne.Do(application.Quit)
	}()

	window.ShowAndRun()

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// newLogger builds the process logger.
func newLogger(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		// No logger to report with; give up early.
		panic(err)
	}
	return logger
}
