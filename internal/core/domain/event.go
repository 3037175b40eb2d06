package domain

import "time"

// Event is a scheduled club activity (Phase 2, declaration only).
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	EventDate   time.Time `json:"eventDate"`
	EventTime   string    `json:"eventTime"`
	Location    string    `json:"location,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AttendanceStatus records how an athlete responded to an event.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// Attendance links an athlete to an event (Phase 2, declaration only).
type Attendance struct {
	ID        string           `json:"id"`
	EventID   string           `json:"eventId"`
	AthleteID string           `json:"athleteId"`
	Status    AttendanceStatus `json:"status"`
	MarkedAt  time.Time        `json:"markedAt"`
	MarkedBy  string           `json:"markedBy"`
	Notes     string           `json:"notes,omitempty"`
}

// AttendanceStats aggregates attendance per athlete for dashboards.
type AttendanceStats struct {
	AthleteID      string  `json:"athleteId"`
	TotalEvents    int     `json:"totalEvents"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	Excused        int     `json:"excused"`
	AttendanceRate float64 `json:"attendanceRate"`
}
