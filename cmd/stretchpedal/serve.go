package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-stretch/dsp/buffer"
	"github.com/cwbudde/algo-stretch/internal/host"
	"github.com/cwbudde/algo-stretch/internal/wavio"
)

var (
	serveInput  string
	serveOutput string
	serveListen string

	serveOutputSeconds int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pedal headless with an HTTP control surface",
	Long: `Serve runs the audio callback on a wall-clock timer instead of an audio
device. Input is a looped WAV file, a test tone or noise (default
silence). Footswitches are POST /v1/record and POST /v1/bypass; status
is GET /v1/status and metrics are GET /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadSource(serveInput, cfg.Audio.SampleRate)
		if err != nil {
			return err
		}
		p, err := newPedal(cfg, logger)
		if err != nil {
			return err
		}

		listen := cfg.Control.Listen
		if serveListen != "" {
			listen = serveListen
		}

		var captured *buffer.Buffer[float32]
		var sink func([]float32)
		if serveOutput != "" {
			if serveOutputSeconds <= 0 {
				return fmt.Errorf("--output-seconds must be > 0: %d", serveOutputSeconds)
			}
			captured = buffer.WithCapacity[float32](serveOutputSeconds * cfg.Audio.SampleRate)
			sink = func(out []float32) { captured.AppendBounded(out...) }
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		stream := host.NewStream(p.proc, src, cfg.Audio.BlockSize)
		err = host.Run(ctx, p.bg,
			func(ctx context.Context) error { return stream.RunClocked(ctx, cfg.Audio.SampleRate, sink) },
			func(ctx context.Context) error { return p.control.Run(ctx, listen) },
		)
		if err != nil {
			return err
		}

		if serveOutput != "" {
			if captured.Len() == captured.Cap() {
				logger.Warn("output capture full, later audio was not written",
					zap.Int("seconds", serveOutputSeconds))
			}
			if err := wavio.WriteMono16(serveOutput, cfg.Audio.SampleRate, captured.Samples()); err != nil {
				return err
			}
			logger.Info("wrote output", zap.String("path", serveOutput), zap.Int("samples", captured.Len()))
		}
		logger.Info("shut down")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveInput, "input", "i", "", "capture input: WAV file, tone:<hz> or noise (looped)")
	serveCmd.Flags().StringVarP(&serveOutput, "output", "o", "", "write everything the callback produced to this WAV file on exit")
	serveCmd.Flags().IntVar(&serveOutputSeconds, "output-seconds", 60, "longest stretch of output kept for --output")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "control API address (overrides config)")
}
