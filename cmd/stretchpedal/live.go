//go:build !headless

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ebitengine/oto/v3"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stretch/internal/host"
)

var (
	liveInput  string
	liveListen string
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Run the pedal against the default audio output",
	Long: `Live pulls the audio callback from the system audio output, so the
device clock paces the pedal. Input is a looped WAV file, a test tone
or noise (default silence). The HTTP control surface runs alongside.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadSource(liveInput, cfg.Audio.SampleRate)
		if err != nil {
			return err
		}
		p, err := newPedal(cfg, logger)
		if err != nil {
			return err
		}

		otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   cfg.Audio.SampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			return fmt.Errorf("failed to open audio output: %w", err)
		}
		<-ready

		player := otoCtx.NewPlayer(host.NewStream(p.proc, src, cfg.Audio.BlockSize))
		player.Play()
		defer player.Close()

		listen := cfg.Control.Listen
		if liveListen != "" {
			listen = liveListen
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return host.Run(ctx, p.bg,
			func(ctx context.Context) error { return p.control.Run(ctx, listen) },
		)
	},
}

func init() {
	liveCmd.Flags().StringVarP(&liveInput, "input", "i", "", "capture input: WAV file, tone:<hz> or noise (looped)")
	liveCmd.Flags().StringVar(&liveListen, "listen", "", "control API address (overrides config)")
}
