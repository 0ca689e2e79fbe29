package task

import "sort"

// SortByPriority returns a copy of tasks ordered by priority rank, most
// urgent first. Ties break by creation time, earliest first.
func SortByPriority(tasks []Task) []Task {
	sorted := cloneTasks(tasks)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Priority.Rank() != sorted[j].Priority.Rank() {
			return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
		}
		return createdBefore(sorted[i], sorted[j])
	})
	return sorted
}

// SortByDate returns a copy of tasks in creation order, earliest first.
func SortByDate(tasks []Task) []Task {
	sorted := cloneTasks(tasks)
	sort.Slice(sorted, func(i, j int) bool {
		return createdBefore(sorted[i], sorted[j])
	})
	return sorted
}

// SortByDeadline returns a copy of tasks ordered by deadline, soonest
// first. Tasks without a deadline come after every dated task and keep
// creation order among themselves.
func SortByDeadline(tasks []Task) []Task {
	sorted := cloneTasks(tasks)
	sort.Slice(sorted, func(i, j int) bool {
		left, right := sorted[i].Deadline, sorted[j].Deadline
		switch {
		case left == nil && right == nil:
			return createdBefore(sorted[i], sorted[j])
		case left == nil:
			return false
		case right == nil:
			return true
		case !left.Equal(right.Time):
			return left.Before(right.Time)
		default:
			return createdBefore(sorted[i], sorted[j])
		}
	})
	return sorted
}

// createdBefore orders tasks by creation time, falling back to ID so that
// tasks created in the same instant still sort deterministically.
func createdBefore(a, b Task) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func cloneTasks(tasks []Task) []Task {
	sorted := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		sorted = append(sorted, t.Clone())
	}
	return sorted
}
