package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anchorplan/anchorplan/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local result cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear cached room and placement results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCachePath()
		},
	})

	return cmd
}

// runCacheClear wipes the file cache and reports how many entries went.
func (c *CLI) runCacheClear() error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	removed, err := fc.Clear()
	if err != nil {
		return err
	}
	if removed == 0 {
		printInfo("Cache is empty")
		return nil
	}

	printSuccess("Cleared %d cached entries", removed)
	printDetail("Directory: %s", dir)
	return nil
}

// runCachePath prints the cache directory without decoration so the
// output can feed straight into shell pipelines.
func (c *CLI) runCachePath() error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	fmt.Println(dir)
	return nil
}
