package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-stretch/dsp/core"
	"github.com/cwbudde/algo-stretch/dsp/dither"
	"github.com/cwbudde/algo-stretch/dsp/session"
	"github.com/cwbudde/algo-stretch/dsp/signal"
	"github.com/cwbudde/algo-stretch/dsp/stretch"
	"github.com/cwbudde/algo-stretch/internal/host"
	"github.com/cwbudde/algo-stretch/internal/wavio"
	timestats "github.com/cwbudde/algo-stretch/stats/time"
)

var (
	renderStretch float64
	renderSeed    uint32
	renderPlain   bool
	renderPeak    float64
)

var renderCmd = &cobra.Command{
	Use:   "render <input.wav> <output.wav>",
	Short: "Stretch a WAV file offline",
	Long: `Render records the input (downmixed to mono, at most 16 seconds) the
way the pedal would and writes every stretched block to a 16-bit WAV file.
The input's sample rate overrides audio.sample_rate.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := wavio.ReadMono(args[0])
		if err != nil {
			return err
		}

		pc := cfg.ProcessorConfig()
		pc.SampleRate = in.SampleRate
		if cmd.Flags().Changed("stretch") {
			pc.Stretch = renderStretch
		}
		seed := cfg.Stretch.Seed
		if cmd.Flags().Changed("seed") {
			seed = renderSeed
		}

		sess, err := session.New(pc, stretch.WithSeed(seed))
		if err != nil {
			return err
		}
		if len(in.Samples) > sess.RecordingCap() {
			logger.Warn("input longer than the recording buffer, truncating",
				zap.Int("samples", len(in.Samples)),
				zap.Int("capacity", sess.RecordingCap()),
			)
		}

		out, err := host.Render(sess, in.Samples, pc.BlockSize)
		if err != nil {
			return err
		}
		if len(out) == 0 {
			return fmt.Errorf("input %s is shorter than one %d-sample frame", args[0], core.WindowSize)
		}

		if renderPeak > 0 {
			if err := signal.Normalize(out, renderPeak); err != nil {
				return err
			}
		}

		dt := dither.DitherTriangular
		if renderPlain {
			dt = dither.DitherNone
		}
		err = wavio.WriteMono16(args[1], in.SampleRate, out,
			dither.WithDitherType(dt), dither.WithSeed(uint64(seed)))
		if err != nil {
			return err
		}

		st := sess.Stats()
		lv := timestats.Calculate(out)
		logger.Info("render complete",
			zap.String("output", args[1]),
			zap.Float64("stretch", st.Stretch),
			zap.Int("recorded", st.FillLen),
			zap.Int("stretched", st.WriteLen),
			zap.Uint64("blocks", st.Blocks),
			zap.Float64("peak_dbfs", lv.Peak_dB),
			zap.Float64("rms_dbfs", lv.RMS_dB),
		)
		return nil
	},
}

func init() {
	renderCmd.Flags().Float64VarP(&renderStretch, "stretch", "s", 0, "stretch factor (overrides config)")
	renderCmd.Flags().Uint32Var(&renderSeed, "seed", 0, "phase generator seed (overrides config)")
	renderCmd.Flags().BoolVar(&renderPlain, "no-dither", false, "truncate to 16 bits without dither")
	renderCmd.Flags().Float64Var(&renderPeak, "normalize", 0, "scale the output to this peak level (0 keeps the level)")
}
