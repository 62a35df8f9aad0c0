package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/damianpoole/Loadstone/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile <player>",
	Short: "Look up a player's RuneMetrics profile",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProfile,
}

var flagFields []string

func init() {
	profileCmd.Flags().StringSliceVarP(&flagFields, "fields", "f", nil, "Only emit matching top-level fields (case-insensitive, JSON mode)")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	player := joinArgs(args)

	client := profile.NewClient(profile.ClientConfig{
		Cache:  cacheConfig(),
		Logger: logger(),
	})

	p := client.GetProfile(cmd.Context(), player)
	if p == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "No profile found for %q (it may be private).\n", player)
		return nil
	}

	if flagJSON {
		doc, err := profileDocument(p, flagFields)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), doc)
	}

	fmt.Fprint(cmd.OutOrStdout(), formatProfileText(p))
	return nil
}
