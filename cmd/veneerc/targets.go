package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"omibyte.io/veneer/targets"
)

var (
	targetsOpts = struct {
		interrupts bool
	}{}

	targetsCmd = &cobra.Command{
		Use:   "targets [series]",
		Short: "List the supported target devices",
		Run: func(cmd *cobra.Command, args []string) {
			all := targets.All()
			if len(args) > 0 {
				target, err := all.FindBySeries(args[0])
				if err != nil {
					fmt.Println("Error:", err)
					return
				}
				all = targets.Targets{target}
			}

			for _, target := range all {
				fmt.Printf("%s (%s)\n", target.Series, target.Cpu)
				fmt.Printf("  chips: %s\n", strings.Join(target.Chips, ", "))
				if targetsOpts.interrupts {
					fmt.Printf("  interrupts: %s\n", strings.Join(target.Interrupts, ", "))
				}
			}
		},
	}
)

func init() {
	targetsCmd.Flags().BoolVarP(&targetsOpts.interrupts, "interrupts", "i", false, "list the interrupt vectors of each series")
}
