package main

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/sui-agent/internal/config"
	"github.com/AlexZinkM/sui-agent/internal/crypto"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suiagent",
		Short: "Natural-language Sui testnet wallet shell",
		Long: `suiagent keeps a single wallet in a local file and answers plain-English
commands: show the address, check the balance, request faucet funds,
simulate or send a SUI transfer.

Configuration is read from SUIAGENT_* environment variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAgent(cmd.Context(), os.Stdin, os.Stdout)
		},
	}

	cmd.AddCommand(versionCmd(), addressCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "suiagent %s\n", version)
		},
	}
}

// addressCmd prints the stored wallet address without touching the network
func addressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the address stored in the wallet file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			address, err := crypto.ReadWalletAddress(cfg.WalletFile)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "❌ %v\n", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), address)
			return nil
		},
	}
}
