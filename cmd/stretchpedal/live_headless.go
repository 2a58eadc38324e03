//go:build headless

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Run the pedal against the default audio output (not in headless builds)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("live playback is not available in headless builds; use serve")
	},
}
