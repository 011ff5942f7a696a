package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"omibyte.io/veneer/builder"
)

var (
	genOpts = struct {
		output        string
		chip          string
		tags          string
		hosted        bool
		requireUnsafe bool
	}{}

	genCmd = &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate vector trampolines for a package",
		Long:  "Generate vector trampolines for the handler declarations in a package and its dependencies",
		Run: func(cmd *cobra.Command, args []string) {
			// Get the current working directory
			cwd, err := os.Getwd()
			if err != nil {
				panic(err)
			}

			builderOptions := builder.Options{
				Output:        genOpts.output,
				Chip:          genOpts.chip,
				BareMetal:     !genOpts.hosted,
				RequireUnsafe: genOpts.requireUnsafe,
			}

			if len(genOpts.tags) > 0 {
				builderOptions.BuildTags = strings.Split(genOpts.tags, ",")
			}

			if len(cmd.Flags().Args()) == 0 {
				// Generate for the current directory by default
				builderOptions.Packages = append(builderOptions.Packages, cwd)
			} else {
				// Convert the paths to absolute paths
				for _, arg := range cmd.Flags().Args() {
					if filepath.IsLocal(arg) {
						path, _ := filepath.Abs(arg)
						builderOptions.Packages = append(builderOptions.Packages, path)
					} else {
						builderOptions.Packages = append(builderOptions.Packages, arg)
					}
				}
			}

			if err = builder.Generate(context.Background(), builderOptions); err != nil {
				if errors.Is(err, builder.ErrParserError) {
					fmt.Println("Parse error:", err)
				} else {
					fmt.Println("Generation error:", err)
				}
				os.Exit(1)
			}
		},
	}
)

func init() {
	genCmd.Flags().StringVarP(&genOpts.output, "output", "o", "", "output directory (default: alongside each package)")
	genCmd.Flags().StringVar(&genOpts.chip, "chip", "", "target chip or series")
	genCmd.Flags().StringVarP(&genOpts.tags, "tags", "t", "", "build tags")
	genCmd.Flags().BoolVar(&genOpts.hosted, "hosted", false, "generate for a hosted checking pass instead of the target")
	genCmd.Flags().BoolVar(&genOpts.requireUnsafe, "require-unsafe", false, "demand the explicit unsafe marker on every handler")
}
