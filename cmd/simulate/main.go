package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/kestrelgames/duelbots/internal/bot"
	"github.com/kestrelgames/duelbots/internal/display"
	"github.com/kestrelgames/duelbots/internal/duel"
	"github.com/kestrelgames/duelbots/internal/matchid"
	"github.com/kestrelgames/duelbots/internal/randutil"
)

type CLI struct {
	Matches   int    `default:"10000" help:"Number of matches to simulate"`
	CharA     string `default:"knight" help:"Character for side A"`
	CharB     string `default:"witch" help:"Character for side B"`
	DiffA     string `default:"hard" help:"Difficulty for side A: easy, medium, hard, expert"`
	DiffB     string `default:"hard" help:"Difficulty for side B"`
	Seed      int64  `default:"0" help:"RNG seed (0 for random)"`
	ShowTurns bool   `help:"Render every turn of every match (use with a small match count)"`
	Verbose   bool   `short:"v" help:"Verbose logging"`
	TurnLimit int    `default:"0" help:"Override the turn limit (0 keeps the default)"`
}

type MatchOutcome struct {
	WinnerSide int // 0 = A, 1 = B, -1 = draw
	Turns      int
	Reason     duel.EndReason
	Seed       int64
}

type Statistics struct {
	Matches   int
	WinsA     int
	WinsB     int
	Draws     int
	SumTurns  int
	SumTurns2 float64
	Knockouts int
	TimeLimit int
	MinTurns  int
	MaxTurns  int
}

func (s *Statistics) Add(o MatchOutcome) {
	s.Matches++
	switch o.WinnerSide {
	case 0:
		s.WinsA++
	case 1:
		s.WinsB++
	default:
		s.Draws++
	}
	s.SumTurns += o.Turns
	s.SumTurns2 += float64(o.Turns) * float64(o.Turns)
	switch o.Reason {
	case duel.EndKnockout:
		s.Knockouts++
	case duel.EndTurnLimit:
		s.TimeLimit++
	}
	if s.Matches == 1 || o.Turns < s.MinTurns {
		s.MinTurns = o.Turns
	}
	if o.Turns > s.MaxTurns {
		s.MaxTurns = o.Turns
	}
}

func (s *Statistics) MeanTurns() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.SumTurns) / float64(s.Matches)
}

func (s *Statistics) StdDevTurns() float64 {
	if s.Matches < 2 {
		return 0
	}
	mean := s.MeanTurns()
	return math.Sqrt((s.SumTurns2 - float64(s.Matches)*mean*mean) / float64(s.Matches-1))
}

// WinRateCI returns the 95% confidence interval for side A's win rate,
// counting draws as half a win for each side.
func (s *Statistics) WinRateCI() (float64, float64, float64) {
	if s.Matches == 0 {
		return 0, 0, 0
	}
	p := (float64(s.WinsA) + 0.5*float64(s.Draws)) / float64(s.Matches)
	se := math.Sqrt(p * (1 - p) / float64(s.Matches))
	return p, p - 1.96*se, p + 1.96*se
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}

	var logger *log.Logger
	if cli.Verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	} else {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}

	charA, err := duel.ParseCharacter(cli.CharA)
	if err != nil {
		fmt.Printf("Invalid character for side A: %v\n", err)
		kctx.Exit(1)
	}
	charB, err := duel.ParseCharacter(cli.CharB)
	if err != nil {
		fmt.Printf("Invalid character for side B: %v\n", err)
		kctx.Exit(1)
	}
	diffA, err := duel.ParseDifficulty(cli.DiffA)
	if err != nil {
		fmt.Printf("Invalid difficulty for side A: %v\n", err)
		kctx.Exit(1)
	}
	diffB, err := duel.ParseDifficulty(cli.DiffB)
	if err != nil {
		fmt.Printf("Invalid difficulty for side B: %v\n", err)
		kctx.Exit(1)
	}

	rules := duel.DefaultRules()
	if cli.TurnLimit > 0 {
		rules.TurnLimit = cli.TurnLimit
	}

	fmt.Printf("Simulating %d matches: %s/%s vs %s/%s (seed: %d)\n\n",
		cli.Matches, charA, diffA, charB, diffB, cli.Seed)

	startTime := time.Now()
	stats := runSimulation(cli, rules, charA, charB, diffA, diffB, logger)
	duration := time.Since(startTime)

	printResults(stats, cli, duration)
	kctx.Exit(0)
}

func runSimulation(cli CLI, rules duel.Rules, charA, charB duel.Character, diffA, diffB duel.Difficulty, logger *log.Logger) *Statistics {
	stats := &Statistics{}
	masterRng := randutil.New(cli.Seed)

	for i := 0; i < cli.Matches; i++ {
		matchSeed := masterRng.Int64()
		if cli.Matches == 1 {
			// A single-match run takes the CLI seed directly, so any match
			// seed logged below can be replayed with --matches 1 --seed.
			matchSeed = cli.Seed
		}
		outcome := playMatch(matchSeed, rules, charA, charB, diffA, diffB, cli.ShowTurns, logger)
		stats.Add(outcome)

		if outcome.WinnerSide < 0 {
			logger.Debug("draw", "seed", outcome.Seed, "turns", outcome.Turns, "reason", outcome.Reason)
		}

		if (i+1)%10000 == 0 {
			p, _, _ := stats.WinRateCI()
			fmt.Printf("Match %d: A win rate %.3f, mean turns %.1f\n", i+1, p, stats.MeanTurns())
		}
	}

	return stats
}

func playMatch(seed int64, rules duel.Rules, charA, charB duel.Character, diffA, diffB duel.Difficulty, showTurns bool, logger *log.Logger) MatchOutcome {
	rng := randutil.New(seed)

	seatA := duel.Seat{ID: "sim-a", Name: "A", Character: charA, Difficulty: diffA}
	seatB := duel.Seat{ID: "sim-b", Name: "B", Character: charB, Difficulty: diffB}

	id := matchid.New()
	m := duel.NewMatch(id, rules, seatA, seatB, quartz.NewReal(), rng, logger)

	botA := bot.New(seatA.ID, "A", charA, diffA, rng.Int64(), logger)
	botB := bot.New(seatB.ID, "B", charB, diffB, rng.Int64(), logger)
	if err := m.SetAgent(seatA.ID, botA); err != nil {
		logger.Fatal("failed to seat bot", "error", err)
	}
	if err := m.SetAgent(seatB.ID, botB); err != nil {
		logger.Fatal("failed to seat bot", "error", err)
	}

	var md *display.MatchDisplay
	if showTurns {
		md = display.NewMatchDisplay()
		md.RegisterName(seatA.ID, fmt.Sprintf("A (%s/%s)", charA, diffA))
		md.RegisterName(seatB.ID, fmt.Sprintf("B (%s/%s)", charB, diffB))
		md.ShowMatchHeader(id, seatA, seatB)
		m.OnTurn(md.ShowTurn)
	}

	// Bots on both seats submit synchronously, so the whole match
	// resolves inside Start.
	if err := m.Start(); err != nil {
		logger.Fatal("failed to start match", "error", err)
	}

	result := m.Result()
	if result == nil {
		logger.Fatal("match did not finish", "match", id)
	}
	if md != nil {
		md.ShowResult(*result)
		md.ShowSeparator()
	}

	side := -1
	switch result.WinnerID {
	case seatA.ID:
		side = 0
	case seatB.ID:
		side = 1
	}

	return MatchOutcome{
		WinnerSide: side,
		Turns:      result.Turns,
		Reason:     result.Reason,
		Seed:       seed,
	}
}

func printResults(stats *Statistics, cli CLI, duration time.Duration) {
	p, low, high := stats.WinRateCI()
	matchesPerSec := float64(stats.Matches) / duration.Seconds()

	fmt.Printf("\n=== FINAL RESULTS ===\n")
	fmt.Printf("Matches: %d in %v (%.0f matches/sec)\n",
		stats.Matches, duration.Round(time.Millisecond), matchesPerSec)
	fmt.Printf("Side A (%s/%s): %d wins\n", cli.CharA, cli.DiffA, stats.WinsA)
	fmt.Printf("Side B (%s/%s): %d wins\n", cli.CharB, cli.DiffB, stats.WinsB)
	fmt.Printf("Draws: %d\n", stats.Draws)
	fmt.Printf("A win rate: %.4f (95%% CI [%.4f, %.4f], draws counted half)\n", p, low, high)

	fmt.Printf("\n=== MATCH LENGTH ===\n")
	fmt.Printf("Mean turns: %.2f (sd %.2f)\n", stats.MeanTurns(), stats.StdDevTurns())
	fmt.Printf("Range: %d..%d turns\n", stats.MinTurns, stats.MaxTurns)
	fmt.Printf("Endings: %d knockouts (%.1f%%), %d at the turn limit (%.1f%%)\n",
		stats.Knockouts, pct(stats.Knockouts, stats.Matches),
		stats.TimeLimit, pct(stats.TimeLimit, stats.Matches))
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
