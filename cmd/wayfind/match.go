package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/config"
)

func matchCmd() *cobra.Command {
	var (
		dir     string
		asJSON  bool
		outlets bool
	)

	cmd := &cobra.Command{
		Use:   "match <path>",
		Short: "Resolve a path against the route manifest",
		Long: `Match loads wayfind.json, resolves the given path against the
manifest's route table, and prints the selected route, its parameters,
and the unmatched remainder. A path with no matching route prints
"no match" and exits 0: absence of a route is a navigable state, not
an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			table, err := buildTable(cfg)
			if err != nil {
				return err
			}

			entry, m, ok := table.Match(path)
			if !ok {
				if asJSON {
					fmt.Println(`{"match": false}`)
				} else {
					fmt.Println("no match")
				}
				return nil
			}

			result := map[string]any{
				"match":     true,
				"route":     entry.Pattern().String(),
				"prefix":    m.Prefix,
				"remainder": m.Remainder,
				"params":    entry.Params(m),
			}
			if outlets {
				views, err := entry.Load(context.Background())
				if err != nil {
					return err
				}
				result["outlets"] = views
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Printf("route:     %s\n", result["route"])
			fmt.Printf("prefix:    %s\n", result["prefix"])
			fmt.Printf("remainder: %s\n", result["remainder"])
			fmt.Printf("params:    %v\n", result["params"])
			if outlets {
				fmt.Printf("outlets:   %v\n", result["outlets"])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory containing wayfind.json")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&outlets, "outlets", false, "also load and print the outlet views")

	return cmd
}
