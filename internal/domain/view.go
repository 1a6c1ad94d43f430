package domain

// PriorityFilterAll selects tasks of every priority in a query.
const PriorityFilterAll = "all"

// Query represents the filter criteria for a derived view.
type Query struct {
	SearchText     string `json:"searchText"`
	PriorityFilter string `json:"priorityFilter"` // "all" or a priority level
	ShowCompleted  bool   `json:"showCompleted"`
}

// DefaultQuery returns the query that selects every task.
func DefaultQuery() Query {
	return Query{
		PriorityFilter: PriorityFilterAll,
		ShowCompleted:  true,
	}
}

// Stats holds aggregate counters over the full task collection.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	HighPriority   int `json:"highPriority"`
	MediumPriority int `json:"mediumPriority"`
	LowPriority    int `json:"lowPriority"`
	CompletionRate int `json:"completionRate"` // 0-100
}

// DerivedView is a read-only projection of the task collection: the tasks
// matching a query, in collection order, plus aggregate counters over the
// unfiltered collection. It is computed on demand and never persisted.
type DerivedView struct {
	Filtered []Task `json:"filtered"`
	Stats    Stats  `json:"stats"`
}
