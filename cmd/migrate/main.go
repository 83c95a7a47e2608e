package main

import (
	"fmt"
	"os"
	"seatdesk/config"
	"seatdesk/helper"
	"seatdesk/shared/logger"
	"seatdesk/shared/password"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the seatdesk database",
	Long: `Apply or roll back the postgres migrations under migrations/postgres.

The first migration creates the rooms, members and attendance_logs tables and
seeds the default "Main Hall" room.`,
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return helper.Up(config.Get())
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return helper.Down(config.Get())
	},
}

var stepUpCmd = &cobra.Command{
	Use:   "step-up",
	Short: "Apply the next pending migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return helper.StepUp(config.Get())
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Roll back every migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return helper.Drop(config.Get())
	},
}

// hashPinCmd prints the value to put in LIBRARY_PIN_HASH.
var hashPinCmd = &cobra.Command{
	Use:   "hash-pin <pin>",
	Short: "Print the bcrypt hash of an operator PIN",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := password.Hash(args[0])
		if err != nil {
			return fmt.Errorf("failed to hash pin: %w", err)
		}

		cmd.Println(hash)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(upCmd, downCmd, stepUpCmd, dropCmd, hashPinCmd)
}

func main() {
	logger.InitLogger()

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("migrate command failed")
		os.Exit(1)
	}
}
