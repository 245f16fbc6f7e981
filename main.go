package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ross1116/pokeref/internal/app"
	"github.com/ross1116/pokeref/internal/battle"
	"github.com/ross1116/pokeref/internal/config"
	"github.com/ross1116/pokeref/internal/pokemon"
	"github.com/ross1116/pokeref/internal/stats"
)

const usage = `usage: pokeref [flags] <command> [args]

commands:
  dex [offset]              list the Kanto dex, 20 per page
  show <id>                 detail page for one Pokémon
  search <term> [--type t]  search by name, optionally within a type
  types [type]              list types, or the Pokémon of one type
  quiz                      play the multiple-choice quiz
  guess                     play who's that Pokémon
  battle <id> <id> <id>     battle a random wild team with three picks
  clear-cache               drop every cached PokeAPI response
`

func main() {
	flags := pflag.NewFlagSet("pokeref", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	cfgPath := flags.StringP("config", "c", "", "path to a YAML config file")
	typeName := flags.StringP("type", "t", "", "restrict search to one type")
	flags.Bool("log.debug", false, "development logging")
	flags.String("store.path", "pokeref.db", "SQLite file for scores and streaks")
	flags.Uint64("battle.seed", 0, "seed battles and quizzes (0 picks one from the clock)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	args := flags.Args()
	if len(args) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadWithFlags(*cfgPath, flags)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// the terminal is the UI, so logs stay quiet unless asked for
	logger := zap.NewNop()
	if cfg.Log.Debug {
		if logger, err = app.NewLogger(true); err != nil {
			log.Fatalf("logger: %v", err)
		}
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer a.Close()

	cli := &cli{app: a, in: bufio.NewScanner(os.Stdin), out: os.Stdout}
	if err := cli.run(ctx, args, *typeName); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		a.Close()
		os.Exit(1)
	}
}

type cli struct {
	app *app.App
	in  *bufio.Scanner
	out io.Writer
}

func (c *cli) run(ctx context.Context, args []string, typeName string) error {
	switch args[0] {
	case "dex":
		offset := 0
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("bad offset %q", args[1])
			}
			offset = n
		}
		return c.dex(ctx, offset)
	case "show":
		if len(args) != 2 {
			return errors.New("usage: show <id>")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad id %q", args[1])
		}
		return c.show(ctx, id)
	case "search":
		term := strings.Join(args[1:], " ")
		return c.search(ctx, term, typeName)
	case "types":
		if len(args) > 1 {
			return c.byType(ctx, args[1])
		}
		for _, t := range c.app.Catalog.Types() {
			fmt.Fprintln(c.out, t)
		}
		return nil
	case "quiz":
		return c.quiz(ctx)
	case "guess":
		return c.guess(ctx)
	case "battle":
		return c.battle(ctx, args[1:])
	case "clear-cache":
		if err := c.app.Client.ClearCache(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Cache cleared.")
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// prompt prints label and reads one line. ok is false at end of input.
func (c *cli) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *cli) dex(ctx context.Context, offset int) error {
	entries, err := c.app.Catalog.Page(ctx, 20, offset)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(c.out, "#%03d %s\n", e.ID, e.Name)
	}
	return nil
}

func (c *cli) show(ctx context.Context, id int) error {
	d, err := c.app.Catalog.Detail(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "#%03d %s", d.ID, d.Name)
	if d.Genus != "" {
		fmt.Fprintf(c.out, " (%s)", d.Genus)
	}
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Types: %s\n", strings.Join(d.Types, ", "))
	fmt.Fprintf(c.out, "Height: %.1f m  Weight: %.1f kg\n", d.HeightM, d.WeightKg)
	for _, name := range stats.Order {
		fmt.Fprintf(c.out, "  %-16s %3d\n", name, d.Stats[name])
	}
	fmt.Fprintf(c.out, "  %-16s %3d\n", "total", d.StatTotal)
	if d.FlavorText != "" {
		fmt.Fprintf(c.out, "\n%s\n", d.FlavorText)
	}
	return nil
}

func (c *cli) search(ctx context.Context, term, typeName string) error {
	entries, err := c.app.Catalog.Search(ctx, term, typeName)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No Pokémon found.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(c.out, "#%03d %s\n", e.ID, e.Name)
	}
	return nil
}

func (c *cli) byType(ctx context.Context, typeName string) error {
	entries, err := c.app.Catalog.ByType(ctx, typeName)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(c.out, "#%03d %s\n", e.ID, e.Name)
	}
	return nil
}

func (c *cli) quiz(ctx context.Context) error {
	scores := c.app.Quiz.Scores()
	fmt.Fprintf(c.out, "Score %d, best %d. Empty line quits.\n", scores.Current, scores.Highest)
	defer c.app.Quiz.Stop()

	for ctx.Err() == nil {
		q, err := c.app.Quiz.Current(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "\n%s\n", q.Prompt)
		if q.Sprite != "" {
			fmt.Fprintf(c.out, "(%s)\n", q.Sprite)
		}
		for i, o := range q.Options {
			fmt.Fprintf(c.out, "%d. %s\n", i+1, o)
		}

		line, ok := c.prompt("> ")
		if !ok || line == "" {
			return nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(q.Options) {
			fmt.Fprintln(c.out, "Pick one of the numbered options.")
			continue
		}

		v, err := c.app.Quiz.Answer(ctx, q.ID, q.Options[n-1])
		if err != nil {
			return err
		}
		if v.Correct {
			fmt.Fprintln(c.out, "Correct!", v.Explanation)
		} else {
			fmt.Fprintf(c.out, "Wrong, it was %s. %s\n", v.Answer, v.Explanation)
		}
		fmt.Fprintf(c.out, "Score %d, best %d.\n", v.Scores.Current, v.Scores.Highest)
		sleep(ctx, c.app.Config.Quiz.AdvanceDelay)
	}
	return nil
}

func (c *cli) guess(ctx context.Context) error {
	fmt.Fprintf(c.out, "Win streak: %d. Empty line skips, \"q\" quits.\n", c.app.Guess.Streak())
	// an empty line swaps the round in play for a fresh one
	next := c.app.Guess.Open
	for ctx.Err() == nil {
		r, err := next(ctx)
		if err != nil {
			return err
		}
		next = c.app.Guess.Open
		fmt.Fprintf(c.out, "\nWho's that Pokémon? (%s)\n", r.Sprite)

		line, ok := c.prompt("> ")
		if !ok || strings.EqualFold(line, "q") {
			return nil
		}
		if line == "" {
			next = c.app.Guess.Skip
			continue
		}
		v, _, err := c.app.Guess.Check(ctx, r.RoundID, line)
		if err != nil {
			return err
		}
		if v.Correct {
			fmt.Fprintf(c.out, "Yes, it's %s! Streak %d.\n", v.Answer, v.Streak)
		} else {
			fmt.Fprintf(c.out, "No, it was %s. Streak reset.\n", v.Answer)
		}
	}
	return nil
}

func (c *cli) battle(ctx context.Context, args []string) error {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("bad id %q", a)
		}
		ids = append(ids, id)
	}

	fmt.Fprintln(c.out, "Loading teams...")
	rng := c.app.BattleRNG()
	b, err := battle.Setup(ctx, c.app.Client, ids, rng, c.app.Config.API.MaxParallel)
	if errors.Is(err, battle.ErrInvalidTeam) {
		return fmt.Errorf("pick exactly %d ids between 1 and %d", battle.TeamSize, pokemon.KantoCount)
	}
	if err != nil {
		return err
	}

	updates := make(chan battle.Snapshot, 16)
	sess := battle.NewSession(battle.SessionConfig{
		ID:           "cli",
		Battle:       b,
		RNG:          rng,
		Scheduler:    c.app.Scheduler,
		DisplayDelay: c.app.Config.Battle.DisplayDelay,
		AIDelay:      c.app.Config.Battle.AIDelay,
		Logger:       c.app.Logger,
		OnChange:     func(s battle.Snapshot) { updates <- s },
	})
	defer sess.Close()

	start := time.Now()
	updates <- sess.Snapshot()
	for {
		var snap battle.Snapshot
		select {
		case snap = <-updates:
		case <-ctx.Done():
			return nil
		}

		battle.DisplaySnapshot(c.out, snap)
		if snap.Outcome != battle.Ongoing {
			break
		}
		if snap.InputDisabled {
			continue
		}

		battle.DisplayMoveOptions(c.out, snap.Player.Moves)
		line, ok := c.prompt("Choose a move: ")
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || !sess.SubmitMove(n-1) {
			fmt.Fprintln(c.out, "Invalid move selection. Please try again.")
			updates <- sess.Snapshot()
		}
	}

	fmt.Fprintln(c.out, "\nBattle time:", time.Since(start).Round(time.Second))
	return nil
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
