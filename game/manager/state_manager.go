package manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"snake-search/game/types"
)

// GameRecord is one finished game of one snake
type GameRecord struct {
	AgentID   string         `json:"agentId"`
	Strategy  types.Strategy `json:"strategy"`
	Score     int            `json:"score"`
	Length    int            `json:"length"`
	Ticks     int            `json:"ticks"`
	StartTime time.Time      `json:"startTime"`
	EndTime   time.Time      `json:"endTime"`
}

type GameStats struct {
	HighScore int          `json:"highScore"`
	Games     []GameRecord `json:"games"`
}

// Duration is the wall-clock length of the game
func (r GameRecord) Duration() time.Duration {
	if r.EndTime.Before(r.StartTime) {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}

// StateManager keeps the score history across restarts. It is safe for concurrent use.
type StateManager struct {
	mutex     sync.RWMutex
	highScore int
	games     []GameRecord
}

func NewStateManager() *StateManager {
	return &StateManager{
		games: make([]GameRecord, 0),
	}
}

// AddGame records a finished game and updates the high score
func (sm *StateManager) AddGame(record GameRecord) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	sm.games = append(sm.games, record)
	if record.Score > sm.highScore {
		sm.highScore = record.Score
	}
}

func (sm *StateManager) GetHighScore() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.highScore
}

// GetScoreHistory returns the scores in the order games ended
func (sm *StateManager) GetScoreHistory() []int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	scores := make([]int, len(sm.games))
	for i, g := range sm.games {
		scores[i] = g.Score
	}
	return scores
}

func (sm *StateManager) GetGames() []GameRecord {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	out := make([]GameRecord, len(sm.games))
	copy(out, sm.games)
	return out
}

func (sm *StateManager) GetGamesPlayed() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return len(sm.games)
}

// GetAverageScore averages over every game, or over one strategy when filter is given
func (sm *StateManager) GetAverageScore(filter ...types.Strategy) float64 {
	scores := sm.scores(filter)
	if len(scores) == 0 {
		return 0
	}
	total := 0
	for _, s := range scores {
		total += s
	}
	return float64(total) / float64(len(scores))
}

func (sm *StateManager) GetMedianScore(filter ...types.Strategy) float64 {
	scores := sm.scores(filter)
	if len(scores) == 0 {
		return 0
	}
	sort.Ints(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		return float64(scores[mid-1]+scores[mid]) / 2
	}
	return float64(scores[mid])
}

func (sm *StateManager) scores(filter []types.Strategy) []int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	scores := make([]int, 0, len(sm.games))
	for _, g := range sm.games {
		if len(filter) > 0 && !containsStrategy(filter, g.Strategy) {
			continue
		}
		scores = append(scores, g.Score)
	}
	return scores
}

// GetAverageDuration returns the mean game length in seconds
func (sm *StateManager) GetAverageDuration() float64 {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	if len(sm.games) == 0 {
		return 0
	}
	var total time.Duration
	for _, g := range sm.games {
		total += g.Duration()
	}
	return total.Seconds() / float64(len(sm.games))
}

// GetMaxDuration returns the longest game in seconds
func (sm *StateManager) GetMaxDuration() float64 {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	var longest time.Duration
	for _, g := range sm.games {
		if d := g.Duration(); d > longest {
			longest = d
		}
	}
	return longest.Seconds()
}

func containsStrategy(list []types.Strategy, s types.Strategy) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// SaveStats writes the history as indented JSON, creating parent directories
func (sm *StateManager) SaveStats(filename string) error {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create stats directory: %w", err)
	}

	data, err := json.MarshalIndent(GameStats{HighScore: sm.highScore, Games: sm.games}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}

// LoadStats reads a history written by SaveStats. A missing file is not an error.
func (sm *StateManager) LoadStats(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var stats GameStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return fmt.Errorf("failed to parse stats file %s: %w", filename, err)
	}

	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	sm.highScore = stats.HighScore
	sm.games = stats.Games
	if sm.games == nil {
		sm.games = make([]GameRecord, 0)
	}
	return nil
}
