package quiz

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ross1116/pokeref/internal/progress"
	"github.com/ross1116/pokeref/internal/scheduler"
	"github.com/ross1116/pokeref/internal/textnorm"
)

var (
	ErrNoQuestion      = errors.New("quiz: no question in play")
	ErrStaleQuestion   = errors.New("quiz: question is no longer in play")
	ErrAlreadyAnswered = errors.New("quiz: question already answered")
)

const advanceTask = "quiz:advance"

// Scorer is the part of *progress.Tracker the quiz writes to.
type Scorer interface {
	Scores() progress.QuizScores
	IncrementScore(ctx context.Context) progress.QuizScores
	ResetCurrentScore(ctx context.Context) progress.QuizScores
}

// Scheduler runs the delayed advance to the next question.
type Scheduler interface {
	AddDelay(name string, delay time.Duration, fn scheduler.TaskFn)
	Remove(name string)
}

type Verdict struct {
	QuestionID  string              `json:"questionId"`
	Chosen      string              `json:"chosen"`
	Correct     bool                `json:"correct"`
	Answer      string              `json:"answer"`
	Explanation string              `json:"explanation"`
	Scores      progress.QuizScores `json:"scores"`
}

type GameConfig struct {
	Generator *Generator
	Scorer    Scorer
	// Scheduler and AdvanceDelay, when both set, queue the next question
	// after every answer.
	Scheduler    Scheduler
	AdvanceDelay time.Duration
	Logger       *zap.Logger
	// OnQuestion is called whenever a scheduled advance puts a new question
	// in play.
	OnQuestion func(Question)
}

// Game keeps the question in play. Each question takes one answer.
type Game struct {
	// drawMu serializes draws so a scheduled advance and a caller asking
	// for the current question never both replace it.
	drawMu sync.Mutex

	mu       sync.Mutex
	cfg      GameConfig
	current  *Question
	answered bool
}

func NewGame(cfg GameConfig) *Game {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Game{cfg: cfg}
}

func (g *Game) open() (Question, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil || g.answered {
		return Question{}, false
	}
	return *g.current, true
}

func (g *Game) draw(ctx context.Context) (Question, error) {
	q, err := g.cfg.Generator.Next(ctx)
	if err != nil {
		return Question{}, err
	}
	g.mu.Lock()
	g.current = &q
	g.answered = false
	g.mu.Unlock()
	return q, nil
}

// NextQuestion draws a fresh question and puts it in play.
func (g *Game) NextQuestion(ctx context.Context) (Question, error) {
	g.drawMu.Lock()
	defer g.drawMu.Unlock()
	return g.draw(ctx)
}

// Current returns the unanswered question in play, drawing a new one if the
// last one has been answered or there is none yet.
func (g *Game) Current(ctx context.Context) (Question, error) {
	g.drawMu.Lock()
	defer g.drawMu.Unlock()
	if q, ok := g.open(); ok {
		return q, nil
	}
	return g.draw(ctx)
}

// Answer grades option against the question with id questionID.
func (g *Game) Answer(ctx context.Context, questionID, option string) (Verdict, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case g.current == nil:
		return Verdict{}, ErrNoQuestion
	case g.current.ID != questionID:
		return Verdict{}, ErrStaleQuestion
	case g.answered:
		return Verdict{}, ErrAlreadyAnswered
	}
	g.answered = true

	q := g.current
	v := Verdict{
		QuestionID:  q.ID,
		Chosen:      option,
		Correct:     textnorm.Equal(option, q.Answer),
		Answer:      q.Answer,
		Explanation: q.Explanation,
	}
	if v.Correct {
		v.Scores = g.cfg.Scorer.IncrementScore(ctx)
	} else {
		v.Scores = g.cfg.Scorer.ResetCurrentScore(ctx)
	}

	if g.cfg.Scheduler != nil && g.cfg.AdvanceDelay > 0 {
		g.cfg.Scheduler.AddDelay(advanceTask, g.cfg.AdvanceDelay, g.advance)
	}
	return v, nil
}

func (g *Game) advance() {
	g.drawMu.Lock()
	if _, ok := g.open(); ok {
		// a caller already moved on
		g.drawMu.Unlock()
		return
	}
	q, err := g.draw(context.Background())
	g.drawMu.Unlock()
	if err != nil {
		g.cfg.Logger.Warn("failed to load next question", zap.Error(err))
		return
	}
	if g.cfg.OnQuestion != nil {
		g.cfg.OnQuestion(q)
	}
}

func (g *Game) Scores() progress.QuizScores {
	return g.cfg.Scorer.Scores()
}

// Stop cancels a pending advance.
func (g *Game) Stop() {
	if g.cfg.Scheduler != nil {
		g.cfg.Scheduler.Remove(advanceTask)
	}
}
