package service

import (
	"github.com/diegoclair/slack-agenda-bot/internal/domain"
	"github.com/diegoclair/slack-agenda-bot/internal/domain/entity"
)

// RelevantCourses drops courses that should never be shown to the user:
// sessions with no identified teacher and unsupervised self-study slots.
// The filter is pure, total and stable: surviving courses keep their
// relative order, and filtering twice gives the same result as once.
func RelevantCourses(courses []entity.Course) []entity.Course {
	filtered := make([]entity.Course, 0, len(courses))
	for _, course := range courses {
		if course.Teacher == "" || course.Teacher == domain.UnknownTeacher {
			continue
		}
		if course.Type == domain.TypeIndependentStudy {
			continue
		}
		filtered = append(filtered, course)
	}
	return filtered
}
