package main

import (
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "problem-analytics",
	Short: "Monthly problem analytics for Zabbix triggers",
	Long: `problem-analytics compares the problem events of a Zabbix trigger in the
current and the previous calendar month: problem count, mean resolution time
and acknowledgement activity.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newReportCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}
