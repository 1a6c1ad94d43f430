// Package view derives filtered, aggregated projections of the task
// collection. Derivation is a pure function: it reads the collection,
// owns no state and never mutates its input.
package view

import (
	"math"
	"strings"

	"priorify/internal/domain"
)

// DeriveView computes the filtered view and aggregate counters for a
// query. Output order preserves the input collection's order. The stats
// are computed over the unfiltered collection.
func DeriveView(tasks []domain.Task, query domain.Query) domain.DerivedView {
	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if matches(task, query) {
			filtered = append(filtered, task)
		}
	}

	return domain.DerivedView{
		Filtered: filtered,
		Stats:    deriveStats(tasks),
	}
}

// matches applies the query predicates; all are AND-combined.
func matches(task domain.Task, query domain.Query) bool {
	if !query.ShowCompleted && task.Completed {
		return false
	}

	if query.PriorityFilter != "" && query.PriorityFilter != domain.PriorityFilterAll {
		if string(task.Priority) != query.PriorityFilter {
			return false
		}
	}

	search := strings.TrimSpace(query.SearchText)
	if search != "" {
		search = strings.ToLower(search)
		title := strings.ToLower(task.Title)
		description := strings.ToLower(task.Description)
		if !strings.Contains(title, search) && !strings.Contains(description, search) {
			return false
		}
	}

	return true
}

func deriveStats(tasks []domain.Task) domain.Stats {
	stats := domain.Stats{Total: len(tasks)}

	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
			continue
		}
		switch task.Priority {
		case domain.PriorityHigh:
			stats.HighPriority++
		case domain.PriorityMedium:
			stats.MediumPriority++
		case domain.PriorityLow:
			stats.LowPriority++
		}
	}

	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(100 * float64(stats.Completed) / float64(stats.Total)))
	}

	return stats
}
