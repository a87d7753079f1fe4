package store

import (
	"fmt"
	"time"

	"github.com/triadhq/triad/pkg/models"
)

// SaveEpisode inserts an episode result.
func (db *DB) SaveEpisode(ep models.EpisodeResult) error {
	if ep.ID == "" {
		return fmt.Errorf("save episode: missing id")
	}

	success := 0
	if ep.Success {
		success = 1
	}

	_, err := db.Exec(`
		INSERT INTO episodes (id, task, success, steps, predicted_steps, coordination_cost, step_efficiency, duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ep.ID, ep.Task, success, ep.Steps, ep.PredictedSteps, ep.CoordinationCost, ep.StepEfficiency, ep.Duration.Milliseconds(), formatTime(ep.StartedAt))
	if err != nil {
		return fmt.Errorf("save episode %s: %w", ep.ID, err)
	}
	return nil
}

// ListEpisodes returns episodes ordered by start time, newest first.
// A non-empty task filters to that task; limit <= 0 means no limit.
func (db *DB) ListEpisodes(task string, limit int) ([]models.EpisodeResult, error) {
	query := `
		SELECT id, task, success, steps, predicted_steps, coordination_cost, step_efficiency, duration_ms, started_at
		FROM episodes
	`
	args := []any{}
	if task != "" {
		query += " WHERE task = ?"
		args = append(args, task)
	}
	query += " ORDER BY started_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer rows.Close()

	var episodes []models.EpisodeResult
	for rows.Next() {
		var (
			ep         models.EpisodeResult
			success    int
			durationMS int64
			startedAt  string
		)
		if err := rows.Scan(&ep.ID, &ep.Task, &success, &ep.Steps, &ep.PredictedSteps, &ep.CoordinationCost, &ep.StepEfficiency, &durationMS, &startedAt); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		ep.Success = success == 1
		ep.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := parseTime(startedAt); err == nil {
			ep.StartedAt = ts
		}
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}

// EpisodeSummary aggregates stored episodes.
type EpisodeSummary struct {
	Episodes            int
	Successes           int
	SuccessRate         float64
	AvgSteps            float64
	AvgStepEfficiency   float64
	AvgCoordinationCost float64
}

// Summary aggregates all episodes, or a single task's episodes when task is
// non-empty.
func (db *DB) Summary(task string) (EpisodeSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(success), 0),
		       COALESCE(AVG(steps), 0),
		       COALESCE(AVG(step_efficiency), 0),
		       COALESCE(AVG(coordination_cost), 0)
		FROM episodes
	`
	args := []any{}
	if task != "" {
		query += " WHERE task = ?"
		args = append(args, task)
	}

	var s EpisodeSummary
	row := db.QueryRow(query, args...)
	if err := row.Scan(&s.Episodes, &s.Successes, &s.AvgSteps, &s.AvgStepEfficiency, &s.AvgCoordinationCost); err != nil {
		return EpisodeSummary{}, fmt.Errorf("summarize episodes: %w", err)
	}
	if s.Episodes > 0 {
		s.SuccessRate = float64(s.Successes) / float64(s.Episodes)
	}
	return s, nil
}
