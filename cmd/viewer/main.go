// Command viewer renders a terminal scoreboard of the currently live
// matches by polling the gateway's REST list endpoint.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"scorecast/domain"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Gateway base URL")
	interval := flag.Duration("interval", 5*time.Second, "Polling interval")
	once := flag.Bool("once", false, "Render a single snapshot and exit")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	for {
		matches, err := fetchLiveMatches(client, *baseURL)
		if err != nil {
			log.Fatalf("Failed to fetch live matches: %v", err)
		}
		render(matches)

		if *once {
			return
		}
		time.Sleep(*interval)
	}
}

func fetchLiveMatches(client *http.Client, baseURL string) ([]domain.MatchSummary, error) {
	resp, err := client.Get(baseURL + "/v1/live")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var matches []domain.MatchSummary
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func render(matches []domain.MatchSummary) {
	if len(matches) == 0 {
		color.Gray.Println("No live matches")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Match", "Sport", "Teams", "Score", "Overs", "Status"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, m := range matches {
		displayID := m.ID
		if len(displayID) > 8 {
			displayID = displayID[:8]
		}
		table.Append([]string{
			displayID,
			m.Sport,
			fmt.Sprintf("%s vs %s", m.TeamA, m.TeamB),
			fmt.Sprintf("%s / %s", m.ScoreA, m.ScoreB),
			m.Overs,
			color.Green.Sprint(string(m.Status)),
		})
	}
	table.Render()
}
