package manager

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Scores holds the two personal bests. A game in which the autopilot steered at least
// once only ever counts toward Autopilot.
type Scores struct {
	Manual    int `json:"bestScore"`
	Autopilot int `json:"bestAutoPilotScore"`
}

// StateManager persists the best scores to a JSON file.
type StateManager struct {
	filename string
	scores   Scores
	mutex    sync.RWMutex
}

// NewStateManager loads the scores file. A missing file starts from zero.
func NewStateManager(filename string) (*StateManager, error) {
	sm := &StateManager{filename: filename}
	if err := sm.LoadStats(); err != nil {
		return nil, err
	}
	return sm, nil
}

func (sm *StateManager) LoadStats() error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	data, err := os.ReadFile(sm.filename)
	if err != nil {
		if os.IsNotExist(err) {
			sm.scores = Scores{}
			return nil
		}
		return errors.Wrapf(err, "read scores %s", sm.filename)
	}

	var scores Scores
	if err := json.Unmarshal(data, &scores); err != nil {
		return errors.Wrapf(err, "decode scores %s", sm.filename)
	}
	if scores.Manual < 0 || scores.Autopilot < 0 {
		return errors.Errorf("scores file %s holds a negative score", sm.filename)
	}
	sm.scores = scores
	return nil
}

func (sm *StateManager) SaveStats() error {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.save()
}

func (sm *StateManager) save() error {
	if dir := filepath.Dir(sm.filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "create scores directory")
		}
	}

	data, err := json.MarshalIndent(sm.scores, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode scores")
	}
	return errors.Wrapf(os.WriteFile(sm.filename, data, 0644), "write scores %s", sm.filename)
}

// Record raises the matching best if score beats it and saves the file. It reports
// whether a new best was set.
func (sm *StateManager) Record(score int, autopilot bool) (bool, error) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	best := &sm.scores.Manual
	if autopilot {
		best = &sm.scores.Autopilot
	}
	if score <= *best {
		return false, nil
	}
	*best = score
	return true, sm.save()
}

func (sm *StateManager) GetScores() Scores {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.scores
}
