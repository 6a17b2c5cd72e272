package service

import (
	"sort"

	"workflowpro-backend/entity"
)

// The store is queried with equality filters only, so every ordering is
// applied here after the fetch. Documents without a created_at decode to the
// zero time and therefore sort as oldest.

func sortTeamsNewestFirst(teams []entity.Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].CreatedAt.After(teams[j].CreatedAt)
	})
}

func sortProjectsNewestFirst(projects []entity.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
}

func sortSprintsNewestFirst(sprints []entity.Sprint) {
	sort.SliceStable(sprints, func(i, j int) bool {
		return sprints[i].CreatedAt.After(sprints[j].CreatedAt)
	})
}

// Tasks sort ascending by their intra-board order key; a task that never got
// one decodes to 0.
func sortTasksByOrder(tasks []entity.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Order < tasks[j].Order
	})
}
