package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pharloom/echoes/internal/api"
	"github.com/pharloom/echoes/internal/config"
)

var areasCmd = &cobra.Command{
	Use:   "areas",
	Short: "List the configured areas",
	RunE:  runAreas,
}

func runAreas(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configDir())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAUDIO\tVIDEO")
	for _, area := range cfg.Areas {
		name := area.DisplayName
		if area.ID == cfg.DefaultArea {
			name += " (default)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			area.ID, name, presence(area.AudioPath), presence(area.VideoPath))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if client := api.NewClient(cfg.API.BaseURL, cfg.API.Token); client.Configured() {
		printServerAreas(cmd, client, cfg)
	}
	return nil
}

// printServerAreas flags areas the backend knows that the local catalog does
// not. Purely informational; network errors are ignored.
func printServerAreas(cmd *cobra.Command, client *api.Client, cfg *config.Config) {
	remote, err := client.Areas(cmd.Context())
	if err != nil {
		return
	}
	var missing []string
	for _, area := range remote {
		if _, ok := cfg.AreaByID(area.ID); !ok {
			missing = append(missing, area.ID)
		}
	}
	if len(missing) > 0 {
		fmt.Printf("\nAvailable on server but not configured locally: %v\n", missing)
	}
}

func presence(path string) string {
	if path == "" {
		return "-"
	}
	if _, err := os.Stat(path); err != nil {
		return path + " (missing)"
	}
	return path
}
