package handlers

import "daymark/models"

const calendarDays = 30

// buildCalendar expands the saved entries into the fixed 30-slot sequence the
// home view renders. Days without a saved entry get zero scores.
func buildCalendar(userID int, entries []models.DayEntry) []models.DayEntry {
	byDay := make(map[int]models.DayEntry, len(entries))
	for _, e := range entries {
		byDay[e.Day] = e
	}

	slots := make([]models.DayEntry, 0, calendarDays)
	for day := 1; day <= calendarDays; day++ {
		if e, ok := byDay[day]; ok {
			slots = append(slots, e)
		} else {
			slots = append(slots, models.DayEntry{Day: day, UserID: userID})
		}
	}
	return slots
}

// goalReached reports whether the final day has been filled in, which is what
// triggers the goal-completion prompt.
func goalReached(slots []models.DayEntry) bool {
	last := slots[len(slots)-1]
	return last.Motivation > 0 || last.Satisfaction > 0
}
