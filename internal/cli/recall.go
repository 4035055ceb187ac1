package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/recollect-ai/recollect/internal/config"
	"github.com/recollect-ai/recollect/internal/recall"
	"github.com/recollect-ai/recollect/internal/store"
	"github.com/spf13/cobra"
)

var recallLimit int

var recallCmd = &cobra.Command{
	Use:   "recall [path]",
	Short: "Rank past sessions against a directory",
	Long:  "Score stored sessions against the given directory (default: current) and print the most relevant ones.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRecall,
}

func init() {
	recallCmd.Flags().IntVarP(&recallLimit, "limit", "n", 0, "Override the configured session cap")
}

// openStore opens the database the way the server does: config file,
// then env, then the default path.
func openStore() (*store.DB, config.Config, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, cfg, err
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, cfg, err
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("open db: %w", err)
	}
	return db, cfg, nil
}

func runRecall(cmd *cobra.Command, args []string) error {
	cwd := ""
	if len(args) > 0 {
		cwd = args[0]
	} else {
		var err error
		cwd, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("getwd: %w", err)
		}
	}

	db, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if recallLimit > 0 {
		cfg.Recall.MaxSessions = recallLimit
	}

	items, err := recall.Recall(db, cfg.Recall, cwd, "")
	if err != nil {
		return fmt.Errorf("recall: %w", err)
	}

	if len(items) == 0 {
		fmt.Println("No relevant sessions found.")
		return nil
	}

	for i, it := range items {
		sess := it.Stored
		ts := time.UnixMilli(sess.StartedAt).Format("2006-01-02 15:04")
		project := sess.Project
		if project != "" {
			project = filepath.Base(project)
		}
		fmt.Printf("%d. [%.3f] %s %s\n", i+1, it.Scored.Score, ts, project)
		if sess.Summary != "" {
			fmt.Printf("   %s\n", sess.Summary)
		}
		fmt.Printf("   similarity %.3f · time %.3f · bonus %.2f\n", it.Scored.Similarity, it.Scored.TimeWeight, it.Scored.StructuralBonus)
		fmt.Println()
	}

	return nil
}
