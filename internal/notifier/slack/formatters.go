package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/mauv0809/la-canchita/internal/asado"
	"github.com/mauv0809/la-canchita/internal/league"
	"github.com/mauv0809/la-canchita/internal/stats"
	"github.com/slack-go/slack"
)

func formatDate(t time.Time) string {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		return t.Format("Monday 02 Jan, 15:04")
	}
	return t.In(loc).Format("Monday 02 Jan, 15:04")
}

// displayNames maps player ids to display names, falling back to the id
// for players no longer on the roster.
func displayNames(players []league.Player) func(id string) string {
	byID := make(map[string]string, len(players))
	for _, p := range players {
		byID[p.ID] = p.DisplayName()
	}
	return func(id string) string {
		if name, ok := byID[id]; ok {
			return name
		}
		return id
	}
}

func rosterText(label string, ids []string, name func(string) string) string {
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("• %s", name(id)))
	}
	return label + "\n" + strings.Join(lines, "\n")
}

// formatMatchResult creates the Slack message for a recorded match using Block Kit.
func (s *Notifier) formatMatchResult(match *league.Match, players []league.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⚽ Match recorded! ⚽", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var resultText string
	switch {
	case match.GoalDiff > 0:
		resultText = fmt.Sprintf("Team A won by %d", match.GoalDiff)
	case match.GoalDiff < 0:
		resultText = fmt.Sprintf("Team B won by %d", -match.GoalDiff)
	default:
		resultText = "Draw"
	}
	detailsText := fmt.Sprintf("%s\n%s", resultText, formatDate(match.Date))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	name := displayNames(players)
	teamFields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("plain_text", rosterText("Team A:", match.TeamA, name), true, false),
		slack.NewTextBlockObject("plain_text", rosterText("Team B:", match.TeamB, name), true, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, teamFields, nil))

	if len(match.SmokedPlayerIDs) > 0 {
		smokers := make([]string, 0, len(match.SmokedPlayerIDs))
		for _, id := range match.SmokedPlayerIDs {
			smokers = append(smokers, name(id))
		}
		smokedText := fmt.Sprintf("🚬 Smoking: %s", strings.Join(smokers, ", "))
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", smokedText, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatSeasonTable creates a Slack message to display the season leaderboard.
func (s *Notifier) formatSeasonTable(seasonName string, rows []stats.TableRow) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s 🏆", seasonName), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No matches played yet. Go book the canchita!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, row := range rows {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		rowText := fmt.Sprintf("%d. %s %s\n> Pts: %d | W-D-L: %d-%d-%d | GD: %+d | Form: %s",
			rank,
			medal,
			row.DisplayName,
			row.Points,
			row.Wins,
			row.Draws,
			row.Losses,
			row.GoalDiff,
			row.Last5,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", rowText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatAsadoRecorded creates the Slack message for a recorded asado.
func (s *Notifier) formatAsadoRecorded(event *asado.Asado, players []league.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🔥 Asado recorded! 🔥", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	details := formatDate(event.Date)
	if event.Venue != "" {
		details = fmt.Sprintf("%s\n%s", event.Venue, details)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, true, false), nil, nil))

	name := displayNames(players)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", rosterText("Present:", event.PresentPlayerIDs, name), true, false), nil, nil))

	var contextElements []slack.MixedElement
	if event.HostPlayerID != "" {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏠 %s hosted", name(event.HostPlayerID)), true, false))
	}
	if event.AsadorPlayerID != "" {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", fmt.Sprintf("🔥 %s manned the grill", name(event.AsadorPlayerID)), true, false))
	}
	if len(contextElements) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}

	return slack.NewBlockMessage(blocks...)
}
