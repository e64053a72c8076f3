package manager

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"snake-autopilot/game/types"

	"github.com/pkg/errors"
)

// GameRecord is the outcome of one finished game.
type GameRecord struct {
	Algorithm types.Algorithm     `json:"algorithm"`
	Score     int                 `json:"score"`
	Ticks     int                 `json:"ticks"`
	Collision types.CollisionType `json:"collision"`
	// Filled is set when the run was stopped with a single free cell left.
	Filled   bool          `json:"filled"`
	Duration time.Duration `json:"duration"`
}

// Summary aggregates the records of one algorithm.
type Summary struct {
	Algorithm    types.Algorithm
	Games        int
	AverageScore float64
	MedianScore  float64
	MinScore     int
	MaxScore     int
	AverageTicks float64
	Deaths       map[types.CollisionType]int
	Filled       int
	Duration     time.Duration
}

// GameStats collects game records from concurrent runs.
type GameStats struct {
	games []GameRecord
	mutex sync.RWMutex
}

func NewGameStats() *GameStats {
	return &GameStats{games: make([]GameRecord, 0)}
}

func (s *GameStats) AddGame(rec GameRecord) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.games = append(s.games, rec)
}

func (s *GameStats) GetGamesPlayed() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.games)
}

// SaveToFile writes every record as JSON.
func (s *GameStats) SaveToFile(filename string) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return errors.Wrap(err, "create stats directory")
	}
	data, err := json.MarshalIndent(s.games, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode stats")
	}
	return errors.Wrapf(os.WriteFile(filename, data, 0644), "write stats %s", filename)
}

// Summaries returns one summary per algorithm that has records, in menu order.
func (s *GameStats) Summaries() []Summary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var out []Summary
	for _, alg := range types.Algorithms {
		var records []GameRecord
		for _, g := range s.games {
			if g.Algorithm == alg {
				records = append(records, g)
			}
		}
		if len(records) > 0 {
			out = append(out, summarize(alg, records))
		}
	}
	return out
}

func summarize(alg types.Algorithm, records []GameRecord) Summary {
	sum := Summary{
		Algorithm: alg,
		Games:     len(records),
		Deaths:    make(map[types.CollisionType]int),
	}

	scores := make([]float64, 0, len(records))
	var totalScore, totalTicks int
	sum.MinScore = records[0].Score
	for _, g := range records {
		totalScore += g.Score
		totalTicks += g.Ticks
		scores = append(scores, float64(g.Score))
		if g.Score > sum.MaxScore {
			sum.MaxScore = g.Score
		}
		if g.Score < sum.MinScore {
			sum.MinScore = g.Score
		}
		if g.Collision != types.NoCollision {
			sum.Deaths[g.Collision]++
		}
		if g.Filled {
			sum.Filled++
		}
		sum.Duration += g.Duration
	}
	sum.AverageScore = float64(totalScore) / float64(len(records))
	sum.AverageTicks = float64(totalTicks) / float64(len(records))

	sort.Float64s(scores)
	if len(scores)%2 == 0 {
		sum.MedianScore = (scores[len(scores)/2-1] + scores[len(scores)/2]) / 2
	} else {
		sum.MedianScore = scores[len(scores)/2]
	}
	return sum
}
