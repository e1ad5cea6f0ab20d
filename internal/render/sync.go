package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jask/bookkeep/internal/model"
)

// SyncPanel is the settings screen.
type SyncPanel struct {
	Loading     bool
	Failed      string
	PendingPush int
	LastStatus  string
	LastTime    string
	Resources   []model.ResourceCount
	Frequency   string
	Pushing     bool
	EditingFreq bool
}

// RenderSync draws the settings screen.
func RenderSync(p SyncPanel, width int) string {
	inner := max(20, width-4)
	if p.Loading {
		return mutedStyle.Render("Checking sync status...")
	}
	if p.Failed != "" {
		body := errorStyle.Render("Connection Failed") + "\n\n" +
			wrap(p.Failed, inner) + "\n\n" +
			actionStyle.Render("[r] Retry")
		return panelStyle.Width(width - 2).Render(body)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("PENDING PUSH") + "\n")
	b.WriteString(titleStyle.Render(strconv.Itoa(p.PendingPush)+" changes") + "\n\n")

	last := p.LastTime
	if last == "" {
		last = "Never"
	}
	b.WriteString(pairLine(Pair{Label: "Last sync", Value: p.LastStatus, Tone: syncTone(p.LastStatus)}, 12, inner) + "\n")
	b.WriteString(pairLine(Pair{Label: "Last time", Value: last}, 12, inner) + "\n")

	if len(p.Resources) > 0 {
		b.WriteString("\n" + headerStyle.Render("BY SHEET") + "\n")
		for _, r := range p.Resources {
			b.WriteString(pairLine(Pair{
				Label: r.Name,
				Value: fmt.Sprintf("↑ %d  ↓ %d", r.Push, r.Pull),
				Tone:  pendingTone(r.Push + r.Pull),
			}, 12, inner) + "\n")
		}
	}

	freq := p.Frequency
	if p.EditingFreq {
		freq = focusStyle.Render(freq + "▏")
	}
	b.WriteString("\n" + pairLine(Pair{Label: "Frequency", Value: freq + " s"}, 12, inner) + "\n")

	var actions []string
	if p.Pushing {
		actions = append(actions, mutedStyle.Render("Pushing..."))
	} else {
		actions = append(actions, actionStyle.Render("[p] Push now"))
	}
	if p.EditingFreq {
		actions = append(actions, actionStyle.Render("[enter] Save frequency"), mutedStyle.Render("[esc] Cancel"))
	} else {
		actions = append(actions, actionStyle.Render("[f] Edit frequency"))
	}
	actions = append(actions, actionStyle.Render("[P] Hard reset from sheet"), actionStyle.Render("[r] Refresh"))
	b.WriteString("\n" + strings.Join(actions, "  "))

	return panelStyle.Width(width - 2).Render(b.String())
}

func syncTone(status string) Tone {
	switch status {
	case "Success":
		return TonePositive
	case "Failed", "Error":
		return ToneNegative
	}
	return ToneMuted
}

func pendingTone(n int) Tone {
	if n > 0 {
		return ToneWarning
	}
	return ToneMuted
}
