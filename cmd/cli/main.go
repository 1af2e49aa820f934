package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host   string
	key    string
	secret string
)

var rootCmd = &cobra.Command{
	Use:   "torneios-cli",
	Short: "A CLI to interact with the torneios server",
	Long: `A command-line interface for making requests to the rankings,
tournaments and students endpoints of the torneios API.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:3001", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&key, "key", os.Getenv("AUTH_KEY"), "API key sent in the Authorization header")
	rootCmd.PersistentFlags().StringVar(&secret, "secret", os.Getenv("AUTH_SECRET"), "API secret sent in the Authorization header")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
