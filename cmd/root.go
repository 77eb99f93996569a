package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gestao",
	Short: "Backend do sistema de gestão contábil",
	Long: `Backend do sistema de gestão para escritórios de contabilidade:
autenticação, clientes, obrigações fiscais, documentos e notificações.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// In local development a .env file stands in for real environment
	// configuration; in production the variables come from the platform.
	if os.Getenv("ENV") == "dev" || os.Getenv("ENV") == "development" {
		_ = godotenv.Load()
	}
}
