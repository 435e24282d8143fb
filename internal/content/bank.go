package content

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/mockinterview/internal/interview"
)

//go:embed bank.yaml
var defaultBank []byte

// ErrScoringUnavailable is returned by Bank.ScoreAnswer. The engine
// substitutes the neutral score.
var ErrScoringUnavailable = errors.New("question bank cannot score answers")

// BankFile is the on-disk layout of a question bank.
type BankFile struct {
	Version   int            `yaml:"version"`
	Questions []BankQuestion `yaml:"questions"`
}

// BankQuestion is one canned question.
type BankQuestion struct {
	Category   string `yaml:"category"`
	Difficulty string `yaml:"difficulty"`
	Text       string `yaml:"text"`
}

type poolKey struct {
	category   interview.Category
	difficulty interview.Difficulty
}

// Bank serves questions from a static YAML bank. It works without any LLM
// credentials, so answers are never scored and follow-ups are never offered.
type Bank struct {
	pools map[poolKey][]string

	mu  sync.Mutex
	rng *rand.Rand
}

var _ interview.ContentProvider = (*Bank)(nil)

// LoadBank reads a bank from path. An empty path loads the built-in bank.
func LoadBank(path string) (*Bank, error) {
	if path == "" {
		return ParseBank(defaultBank)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading question bank: %w", err)
	}
	return ParseBank(data)
}

// ParseBank builds a Bank from YAML.
func ParseBank(data []byte) (*Bank, error) {
	var f BankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing question bank: %w", err)
	}

	b := &Bank{
		pools: make(map[poolKey][]string),
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for i, q := range f.Questions {
		cat, err := interview.ParseCategory(q.Category)
		if err != nil {
			return nil, fmt.Errorf("question bank entry %d: %w", i, err)
		}
		diff, err := interview.ParseDifficulty(q.Difficulty)
		if err != nil || diff == interview.DifficultyMixed {
			return nil, fmt.Errorf("question bank entry %d: difficulty must be Easy, Medium or Hard, got %q", i, q.Difficulty)
		}
		text := strings.TrimSpace(q.Text)
		if text == "" {
			return nil, fmt.Errorf("question bank entry %d: empty text", i)
		}
		k := poolKey{cat, diff}
		b.pools[k] = append(b.pools[k], text)
	}
	if len(b.pools) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}
	return b, nil
}

// Seed makes question selection deterministic.
func (b *Bank) Seed(seed uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rng = rand.New(rand.NewPCG(seed, seed))
}

// Size returns the number of questions in the bank.
func (b *Bank) Size() int {
	n := 0
	for _, p := range b.pools {
		n += len(p)
	}
	return n
}

// GenerateQuestions draws question i from categories[i%len(categories)]
// without repetition. It stops early when a category runs dry, so the
// result may be shorter than count.
func (b *Bank) GenerateQuestions(ctx context.Context, categories []interview.Category, difficulty interview.Difficulty, count int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(categories) == 0 || count < 1 {
		return nil, fmt.Errorf("need at least one category and one question")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	remaining := make(map[interview.Category][]string, len(categories))
	for _, c := range categories {
		pool := b.candidates(c, difficulty)
		b.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		remaining[c] = pool
	}

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		c := categories[i%len(categories)]
		pool := remaining[c]
		if len(pool) == 0 {
			break
		}
		out = append(out, pool[0])
		remaining[c] = pool[1:]
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no %s questions for %s in the question bank", difficulty, categories[0])
	}
	return out, nil
}

// candidates returns a fresh slice of the questions for c at difficulty.
// Mixed draws from every level.
func (b *Bank) candidates(c interview.Category, d interview.Difficulty) []string {
	levels := []interview.Difficulty{d}
	if d == interview.DifficultyMixed {
		levels = []interview.Difficulty{interview.DifficultyEasy, interview.DifficultyMedium, interview.DifficultyHard}
	}
	var out []string
	for _, l := range levels {
		out = append(out, b.pools[poolKey{c, l}]...)
	}
	return out
}

func (b *Bank) ScoreAnswer(context.Context, string, string) (*interview.Score, error) {
	return nil, ErrScoringUnavailable
}

func (b *Bank) GenerateFollowup(context.Context, string, string) (interview.Followup, error) {
	return interview.NoFollowup, nil
}
