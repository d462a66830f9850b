package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/erg0nix/samtale/internal/config"
)

func execute() {
	rootCmd := &cobra.Command{
		Use:   "samtale",
		Short: "samtale is an interactive LLM chat client",
		Args:  cobra.NoArgs,
		RunE:  runRootCmd,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "path to settings file")
	rootCmd.Flags().String("session", "", "session to start in")

	rootCmd.AddCommand(newSessionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styledError(err.Error()))
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Init(path, runSetupWizard)
}

func runRootCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		if errors.Is(err, errSetupDeclined) {
			return nil
		}
		return err
	}

	if name, _ := cmd.Flags().GetString("session"); name != "" {
		if err := cfg.UseSession(name, confirmPrompt); err != nil {
			return err
		}
	}

	return runREPL(cfg)
}

// confirmPrompt is the interactive confirmation collaborator. The
// default answer is no; an aborted prompt counts as no.
func confirmPrompt(prompt string) bool {
	var answer bool
	if err := huh.NewConfirm().Title(prompt).Value(&answer).Run(); err != nil {
		return false
	}
	return answer
}
