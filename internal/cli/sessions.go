package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/recollect-ai/recollect/internal/store"
)

var (
	sessionsLimit   int
	sessionsProject string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent sessions",
	RunE:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 20, "Maximum number of sessions")
	sessionsCmd.Flags().StringVarP(&sessionsProject, "project", "p", "", "Only show sessions for this project path")
}

func runSessions(cmd *cobra.Command, args []string) error {
	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var sessions []store.Session
	if sessionsProject != "" {
		sessions, err = db.GetProjectSessions(sessionsProject, sessionsLimit)
	} else {
		sessions, err = db.GetRecentSessions(sessionsLimit)
	}
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	for _, sess := range sessions {
		ts := time.UnixMilli(sess.StartedAt).Format("2006-01-02 15:04")
		project := sess.Project
		if project == "" {
			project = "unknown"
		} else {
			project = filepath.Base(project)
		}
		fmt.Printf("%s  %-10s %-12s %s\n", ts, sess.Status, project, sess.SessionID)
		if sess.Summary != "" {
			fmt.Printf("  %s\n", sess.Summary)
		}
	}

	return nil
}
