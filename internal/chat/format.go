package chat

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/domain"
	"github.com/diegoclair/slack-agenda-bot/internal/domain/entity"
	"github.com/slack-go/slack"
)

// BuildScheduleBlocks renders the daily summary as Block Kit blocks.
// Times are rendered in the date's location.
func BuildScheduleBlocks(date time.Time, courses []entity.Course) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, fmt.Sprintf("📅 %s", date.Format("02/01/2006")), true, false),
		),
	}

	if len(courses) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "🏖️ *Aucun cours prévu !* Profite de ta journée.", false, false),
			nil, nil,
		))
		return blocks
	}

	sorted := make([]entity.Course, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTS < sorted[j].StartTS
	})

	loc := date.Location()
	for _, course := range sorted {
		blocks = append(blocks,
			slack.NewDividerBlock(),
			slack.NewSectionBlock(
				slack.NewTextBlockObject(slack.MarkdownType, formatCourse(course, loc), false, false),
				nil, nil,
			),
		)
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("Total : %d cours", len(sorted)), false, false),
	))

	return blocks
}

func formatCourse(course entity.Course, loc *time.Location) string {
	start := time.UnixMilli(course.StartTS).In(loc)
	end := time.UnixMilli(course.EndTS).In(loc)

	lines := []string{
		fmt.Sprintf("⏰ *%s - %s*", start.Format("15:04"), end.Format("15:04")),
		fmt.Sprintf("📚 *%s*", course.Name),
	}

	if course.Teacher != "" && course.Teacher != domain.UnknownTeacher {
		lines = append(lines, fmt.Sprintf("🧑‍🏫 _%s_", course.Teacher))
	}

	if len(course.Rooms) > 0 {
		lines = append(lines, fmt.Sprintf("🏫 `%s` (%s)", roomNames(course.Rooms), campuses(course.Rooms)))
	} else if course.Modality == domain.ModalityRemote || strings.Contains(strings.ToUpper(course.Name), "E-LEARNING") {
		lines = append(lines, "🏠 _Distanciel / E-Learning_")
	}

	lines = append(lines, fmt.Sprintf("🏷️ %s • %s", course.Type, course.Modality))

	return strings.Join(lines, "\n")
}

func roomNames(rooms []entity.Room) string {
	names := make([]string, 0, len(rooms))
	for _, r := range rooms {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

// campuses joins the distinct campus names, keeping first-seen order.
func campuses(rooms []entity.Room) string {
	seen := make(map[string]bool, len(rooms))
	var names []string
	for _, r := range rooms {
		if seen[r.Campus] {
			continue
		}
		seen[r.Campus] = true
		names = append(names, r.Campus)
	}
	return strings.Join(names, ", ")
}
