// Package schedule derives cumulative phase boundaries for a writing task.
package schedule

import "examtimer/internal/core/model"

// Schedule is an immutable phase list with cumulative end boundaries in minutes.
type Schedule struct {
	phases        []model.Phase
	cumulativeEnd []int
	totalMinutes  int
}

// Build computes running prefix sums of phase durations.
// An empty input yields a schedule with no phases and zero total.
func Build(phases []model.Phase) Schedule {
	built := Schedule{
		phases:        append([]model.Phase(nil), phases...),
		cumulativeEnd: make([]int, len(phases)),
	}
	sum := 0
	for i, phase := range phases {
		sum += phase.DurationMinutes
		built.cumulativeEnd[i] = sum
	}
	built.totalMinutes = sum
	return built
}

// Len returns the number of phases.
func (schedule Schedule) Len() int {
	return len(schedule.phases)
}

// Phases returns a copy of the phase list.
func (schedule Schedule) Phases() []model.Phase {
	return append([]model.Phase(nil), schedule.phases...)
}

// Phase returns the phase at index.
func (schedule Schedule) Phase(index int) (model.Phase, bool) {
	if index < 0 || index >= len(schedule.phases) {
		return model.Phase{}, false
	}
	return schedule.phases[index], true
}

// CumulativeEndMinutes returns a copy of the phase end boundaries.
func (schedule Schedule) CumulativeEndMinutes() []int {
	return append([]int(nil), schedule.cumulativeEnd...)
}

// TotalMinutes returns the summed duration of all phases.
func (schedule Schedule) TotalMinutes() int {
	return schedule.totalMinutes
}

// TotalSeconds returns TotalMinutes in seconds.
func (schedule Schedule) TotalSeconds() int {
	return schedule.totalMinutes * 60
}

// PhaseAt returns the index of the first phase whose end boundary lies after
// elapsedMinutes, the last index once the whole schedule has passed, or -1
// when the schedule is empty.
func (schedule Schedule) PhaseAt(elapsedMinutes int) int {
	if len(schedule.cumulativeEnd) == 0 {
		return -1
	}
	for i, end := range schedule.cumulativeEnd {
		if elapsedMinutes < end {
			return i
		}
	}
	return len(schedule.cumulativeEnd) - 1
}
