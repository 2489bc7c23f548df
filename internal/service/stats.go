package service

import "github.com/taskdeck/taskdeck/internal/task"

// PriorityCount holds a count for a priority level.
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

// Stats is the aggregate view over the whole store.
type Stats struct {
	Total      int             `json:"total"`
	Completed  int             `json:"completed"`
	Pending    int             `json:"pending"`
	Priorities []PriorityCount `json:"priorities"`
}

// Statistics computes counts by completion status and by priority.
func (s *Service) Statistics() (Stats, error) {
	tasks, err := s.repo.FindAll()
	if err != nil {
		return Stats{}, err
	}

	prioMap := make(map[task.Priority]int, len(task.Priorities()))
	stats := Stats{Total: len(tasks)}

	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
		prioMap[t.Priority]++
	}

	for _, p := range task.Priorities() {
		stats.Priorities = append(stats.Priorities,
			PriorityCount{Priority: p.String(), Count: prioMap[p]})
	}

	return stats, nil
}
