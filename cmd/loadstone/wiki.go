package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/damianpoole/Loadstone/internal/wiki"
	"github.com/damianpoole/Loadstone/internal/wikitext"
)

var wikiCmd = &cobra.Command{
	Use:   "wiki",
	Short: "Query the RuneScape wiki",
}

var wikiSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search wiki articles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWikiSearch,
}

var wikiPageCmd = &cobra.Command{
	Use:   "page <title>",
	Short: "Fetch a wiki article as named sections",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWikiPage,
}

var wikiCategoryCmd = &cobra.Command{
	Use:   "category <name>",
	Short: "List the pages in a wiki category",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWikiCategory,
}

var (
	flagSection       string
	flagCategoryLimit int
)

func init() {
	wikiPageCmd.Flags().StringVarP(&flagSection, "section", "s", "", "Only show the first section whose name contains this text (case-insensitive)")
	wikiCategoryCmd.Flags().IntVarP(&flagCategoryLimit, "limit", "l", wiki.DefaultCategoryLimit, "Maximum number of category members to list")

	wikiCmd.AddCommand(wikiSearchCmd, wikiPageCmd, wikiCategoryCmd)
	rootCmd.AddCommand(wikiCmd)
}

func wikiClient() *wiki.Client {
	return wiki.NewClient(wiki.ClientConfig{
		Cache:  cacheConfig(),
		Logger: logger(),
	})
}

func runWikiSearch(cmd *cobra.Command, args []string) error {
	query := joinArgs(args)
	results := wikiClient().Search(cmd.Context(), query)

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), results)
	}

	if len(results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No results for %q.\n", query)
		return nil
	}
	for _, result := range results {
		fmt.Fprintln(cmd.OutOrStdout(), formatSearchResult(result))
	}
	return nil
}

func runWikiPage(cmd *cobra.Command, args []string) error {
	title := joinArgs(args)
	page := wikiClient().Page(cmd.Context(), title)
	if page == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "No article found for %q.\n", title)
		return nil
	}

	sections, err := wikitext.Parse(page.Extract)
	if err != nil {
		return fmt.Errorf("failed to parse article %q: %w", title, err)
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), pageDocument(page, filterSections(sections, flagSection)))
	}

	fmt.Fprint(cmd.OutOrStdout(), formatPageText(page, sections, flagSection))
	return nil
}

func runWikiCategory(cmd *cobra.Command, args []string) error {
	category := joinArgs(args)
	members := wikiClient().CategoryMembers(cmd.Context(), category, flagCategoryLimit)

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), members)
	}

	if len(members) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No pages found in category %q.\n", category)
		return nil
	}
	for _, title := range members {
		fmt.Fprintln(cmd.OutOrStdout(), title)
	}
	return nil
}
