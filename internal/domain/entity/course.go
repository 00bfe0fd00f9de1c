package entity

// Room is a physical location assigned to a course session.
type Room struct {
	Name   string `json:"name"`
	Campus string `json:"campus"`
}

// Course is one scheduled session from the school agenda.
// Timestamps are epoch milliseconds, as returned by the MyGES API.
type Course struct {
	Name     string `json:"name"`
	StartTS  int64  `json:"start_ts"`
	EndTS    int64  `json:"end_ts"`
	Teacher  string `json:"teacher"`
	Type     string `json:"type"`
	Modality string `json:"modality"`
	Rooms    []Room `json:"rooms"`
}

// Equal reports whether two courses match on every field, rooms included.
// Field-wise comparison avoids the false diffs that serialized-string
// equality produces when field ordering changes.
func (c Course) Equal(other Course) bool {
	if c.Name != other.Name ||
		c.StartTS != other.StartTS ||
		c.EndTS != other.EndTS ||
		c.Teacher != other.Teacher ||
		c.Type != other.Type ||
		c.Modality != other.Modality {
		return false
	}

	if len(c.Rooms) != len(other.Rooms) {
		return false
	}
	for i := range c.Rooms {
		if c.Rooms[i] != other.Rooms[i] {
			return false
		}
	}

	return true
}

// CoursesEqual compares two course lists order-sensitively.
// Any field change in any course (room, teacher, time) counts as a difference.
func CoursesEqual(a, b []Course) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
