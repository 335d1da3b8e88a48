// history.go implements the "echoes history" command showing recent
// sessions and streaks.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pharloom/echoes/internal/api"
	"github.com/pharloom/echoes/internal/config"
	"github.com/pharloom/echoes/internal/domain"
	"github.com/pharloom/echoes/internal/store"
	"github.com/pharloom/echoes/internal/timer"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions and streaks",
	Long: `Display the most recent study sessions from local history along
with the daily, focus, and no-death streak counters.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir := configDir()
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	if cfg.StateDir != "" && flagStateDir == "" {
		dir = cfg.StateDir
	}

	sessions, err := store.NewSessionStore(filepath.Join(dir, "sessions.db"))
	if err != nil {
		return err
	}
	defer func() { _ = sessions.Close() }()

	recent, err := sessions.RecentSessions(flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		fmt.Println("No sessions yet. Start one with: echoes")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tPLAN\tLENGTH\tFOCUS LOST\tSTATUS")
	for _, sess := range recent {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			sess.StartedAt.Local().Format("2006-01-02 15:04"),
			summarizePlan(sess.Plan),
			timer.FormatDetailed(sess.Plan.TotalSeconds()),
			countEvents(sess, domain.EventFocusLost),
			sessionStatus(sess),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	all, err := sessions.ListSessions()
	if err != nil {
		return err
	}
	streaks := store.ComputeStreaks(all)
	fmt.Printf("\nStreaks: daily %d · focus %d · no-death %d\n",
		streaks.Daily, streaks.Focus, streaks.NoDeath)

	printServerStreaks(cmd.Context(), cfg)
	return nil
}

// printServerStreaks shows the backend's view when a backend is configured.
// Local history stays authoritative; failures here print nothing.
func printServerStreaks(ctx context.Context, cfg *config.Config) {
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Token)
	if !client.Configured() {
		return
	}
	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	home, err := client.HomeView(reqCtx)
	if err != nil {
		return
	}
	fmt.Printf("Server:  daily %d · focus %d · no-death %d\n",
		home.Streaks.Daily, home.Streaks.Focus, home.Streaks.NoDeath)
}

func summarizePlan(p domain.SessionPlan) string {
	ids := p.AreaIDs()
	if len(ids) == 0 {
		return "-"
	}
	if len(ids) > 3 {
		return strings.Join(ids[:3], ",") + fmt.Sprintf(",+%d", len(ids)-3)
	}
	return strings.Join(ids, ",")
}

func countEvents(sess domain.StoredSession, typ domain.EventType) int {
	n := 0
	for _, ev := range sess.Events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func sessionStatus(sess domain.StoredSession) string {
	if sess.Completed {
		return "completed"
	}
	return "abandoned"
}
