package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kestrelgames/duelbots/internal/duel"
)

// Styles contains styling for match display
type Styles struct {
	Header    lipgloss.Style
	SubHeader lipgloss.Style
	Action    lipgloss.Style
	Winner    lipgloss.Style
	Attack    lipgloss.Style
	Defend    lipgloss.Style
	Heal      lipgloss.Style
	Curse     lipgloss.Style
	HP        lipgloss.Style
	Separator lipgloss.Style
	Muted     lipgloss.Style
}

// NewStyles creates a new set of display styles
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		SubHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Action: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Attack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Defend: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")).
			Bold(true),
		Heal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Curse: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B48EAD")).
			Bold(true),
		HP: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// MatchDisplay renders match progress to stdout
type MatchDisplay struct {
	styles *Styles
	names  map[string]string
}

// NewMatchDisplay creates a new match display
func NewMatchDisplay() *MatchDisplay {
	return &MatchDisplay{
		styles: NewStyles(),
		names:  make(map[string]string),
	}
}

// RegisterName maps a participant ID to a display name
func (md *MatchDisplay) RegisterName(id, name string) {
	md.names[id] = name
}

func (md *MatchDisplay) nameFor(id string) string {
	if name, ok := md.names[id]; ok {
		return name
	}
	return id
}

// ShowMatchHeader displays the match banner
func (md *MatchDisplay) ShowMatchHeader(matchID string, a, b duel.Seat) {
	fmt.Println(md.styles.Header.Render("*** DUEL ***"))
	fmt.Printf("%s (%s) vs %s (%s)\n",
		md.styles.SubHeader.Render(a.Name), a.Character,
		md.styles.SubHeader.Render(b.Name), b.Character)
	fmt.Println(md.styles.Muted.Render("match " + matchID))
	fmt.Println()
}

// ShowTurn displays one resolved turn
func (md *MatchDisplay) ShowTurn(result duel.TurnResult) {
	fmt.Println(md.styles.SubHeader.Render(fmt.Sprintf("--- turn %d ---", result.Turn)))
	for _, outcome := range result.Outcomes {
		fmt.Println(md.styles.Action.Render(md.formatOutcome(outcome)))
	}
	for _, outcome := range result.Outcomes {
		fmt.Printf("  %s: %s\n", md.nameFor(outcome.ParticipantID), md.formatState(outcome))
	}
	fmt.Println()
}

// ShowResult displays the final match result
func (md *MatchDisplay) ShowResult(result duel.MatchResult) {
	fmt.Println(md.styles.Header.Render("*** MATCH OVER ***"))
	if result.Draw {
		fmt.Printf("Draw after %d turns (%s)\n", result.Turns, result.Reason)
	} else {
		fmt.Printf("%s wins after %d turns (%s)\n",
			md.styles.Winner.Render(md.nameFor(result.WinnerID)), result.Turns, result.Reason)
	}
	fmt.Println()
}

func (md *MatchDisplay) formatOutcome(o duel.ActionOutcome) string {
	name := md.nameFor(o.ParticipantID)
	if o.Card == nil {
		return fmt.Sprintf("%s: passes", name)
	}

	card := md.cardStyle(*o.Card).Render(o.Card.String())
	special := ""
	if o.Special {
		special = md.styles.Winner.Render(" [special]")
	}

	var effects []string
	if o.DamageDealt > 0 {
		effects = append(effects, fmt.Sprintf("deals %d", o.DamageDealt))
	}
	if o.Healed > 0 {
		effects = append(effects, fmt.Sprintf("heals %d", o.Healed))
	}
	if o.ShieldChange > 0 {
		effects = append(effects, fmt.Sprintf("shields +%d", o.ShieldChange))
	}
	if *o.Card == duel.Curse {
		effects = append(effects, "curses their opponent")
	}

	if len(effects) == 0 {
		return fmt.Sprintf("%s: plays %s%s", name, card, special)
	}
	return fmt.Sprintf("%s: plays %s%s, %s", name, card, special, strings.Join(effects, ", "))
}

func (md *MatchDisplay) formatState(o duel.ActionOutcome) string {
	state := md.styles.HP.Render(fmt.Sprintf("%d HP", o.HP))
	if o.Shield > 0 {
		state += md.styles.Defend.Render(fmt.Sprintf(" +%d shield", o.Shield))
	}
	if o.CurseTurns > 0 {
		state += md.styles.Curse.Render(fmt.Sprintf(" (cursed %d)", o.CurseTurns))
	}
	if o.Absorbed > 0 {
		state += md.styles.Muted.Render(fmt.Sprintf(" absorbed %d", o.Absorbed))
	}
	if o.CurseDrain > 0 {
		state += md.styles.Curse.Render(fmt.Sprintf(" drained %d", o.CurseDrain))
	}
	return state
}

func (md *MatchDisplay) cardStyle(card duel.Card) lipgloss.Style {
	switch card {
	case duel.Attack:
		return md.styles.Attack
	case duel.Defend:
		return md.styles.Defend
	case duel.Heal:
		return md.styles.Heal
	case duel.Curse:
		return md.styles.Curse
	default:
		return md.styles.Action
	}
}

// ShowSeparator prints a horizontal rule
func (md *MatchDisplay) ShowSeparator() {
	fmt.Println(md.styles.Separator.Render(strings.Repeat("=", 47)))
}
