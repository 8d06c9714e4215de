package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "Hostel management server with a built-in chat assistant",
	Long: `lumina manages hostels, students, fees, mess menus, notices, complaints,
and leave requests, and answers student questions through a rule-based chat
assistant over their own records.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lumina version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lumina version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(hostelsCmd)
	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(feesCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(noticesCmd)
	rootCmd.AddCommand(complaintsCmd)
	rootCmd.AddCommand(leavesCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}
