package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the schedbot application
var rootCmd = &cobra.Command{
	Use:   "schedbot",
	Short: "Conversational scheduling assistant backed by Ollama and Google Calendar",
	Long: `schedbot is a scheduling assistant: it chats with users through a local
Ollama model, checks Google Calendar availability, proposes meeting slots
and books events with Google Meet links.

It can run as:
  - An HTTP chat API (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "schedbot version %s\n" .Version}}`)

	// Local deployments keep Google and Ollama settings in a .env file;
	// absence is not an error.
	_ = godotenv.Load()

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newVersionCmd())
}
