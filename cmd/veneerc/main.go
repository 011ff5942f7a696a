package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "veneerc",
	Short: "Veneer generates interrupt vector trampolines for Go programs targeting Cortex-M devices",
	Long: `Veneer scans Go packages for handler declarations and generates the
trampolines that bind them to the device's vector table. Handlers are
declared with pragma comments:

	//veneer:entry
	func main() { ... }

	//veneer:interrupt Interrupt.TC3
	func timer() { ... }

Run "veneerc gen" in a package directory to generate.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the veneerc version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("veneerc", version)
	},
}

func init() {
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
