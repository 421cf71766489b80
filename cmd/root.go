package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kennyg/yokogaki/internal/ui"
)

var (
	// Version is set at build time
	Version = "dev"
)

var (
	rootFlag    string
	configFlag  string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "yokogaki",
	Short: "Blog post authoring helper",
	Long: `yokogaki takes care of the busywork around writing posts for a static site.

  new      create today's untitled post stub and open it
  rename   rename the file you are working on and keep it open`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Site root (default: discovered from the working directory)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Config file (default: .config/yokogaki/config.yaml, then ~/.config/yokogaki/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(whereCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("yokogaki %s\n", Version)
	},
}

// exitWithError prints an error and exits
func exitWithError(msg string) {
	fmt.Fprintln(os.Stderr, ui.ErrorLine(msg))
	os.Exit(1)
}
