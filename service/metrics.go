package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	contributionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "household",
		Name:      "contributions_recorded_total",
		Help:      "Contributions recorded, by whether an existing one was replaced.",
	}, []string{"outcome"})

	tasksClaimed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "household",
		Name:      "tasks_claimed_total",
		Help:      "Task claims, including reassignments.",
	})

	stageChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "household",
		Name:      "task_stage_changes_total",
		Help:      "Task stage changes by target stage.",
	}, []string{"stage"})

	membersRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "household",
		Name:      "members_removed_total",
		Help:      "Group members removed, by removal policy.",
	}, []string{"policy"})
)
