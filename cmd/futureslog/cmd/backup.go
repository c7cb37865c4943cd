package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/futureslog/backup"
	"github.com/rustyeddy/futureslog/internal/app"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore the journal",
	Long: `Write every saved slot (trades, conversation) to an xz-compressed
snapshot, or load one back.

Examples:
  futureslog backup create journal-2024-03-15.json.xz
  futureslog backup restore journal-2024-03-15.json.xz`,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Write a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupCreate,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Overwrite saved slots from a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupRestore,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupRestoreCmd)
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	store, err := app.OpenKV(cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create %s: %w", args[0], err)
	}
	snap, err := backup.Write(cmd.Context(), store, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("backup: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d slots to %s\n", len(snap.Keys()), args[0])
	for _, k := range keysOf(snap.Raw) {
		fmt.Fprintf(cmd.OutOrStdout(), "  warning: slot %s is not valid JSON, saved as raw bytes\n", k)
	}
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	store, err := app.OpenKV(cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	snap, err := backup.Restore(cmd.Context(), store, f)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Restored %v from snapshot taken %s\n", snap.Keys(), snap.Created.Format("2006-01-02 15:04"))
	return nil
}

func keysOf(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
