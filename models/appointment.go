package models

// Appointment lifecycle statuses as stored in Supabase. The literals are
// case-sensitive and must match the mobile app's booking flow exactly.
const (
	StatusPendingRequirements = "pending for requirements"
	StatusPending             = "pending"
	StatusApproved            = "approved"
	StatusCancelled           = "cancelled"
	StatusCompleted           = "completed"
)

func Statuses() []string {
	return []string{
		StatusPendingRequirements,
		StatusPending,
		StatusApproved,
		StatusCancelled,
		StatusCompleted,
	}
}

// Placeholders substituted when a joined user or service row is missing.
const (
	UnknownUser         = "Unknown User"
	UnknownService      = "Unknown Service"
	DefaultProfileImage = "/images/default-profile-icon.jpg"
)

// AppointmentRow is the raw shape returned by the appointments query, with
// the users and services joins embedded. Either join may be null.
type AppointmentRow struct {
	AppointmentID   string         `json:"appointment_id"`
	AppointmentDate string         `json:"appointment_date"`
	Status          string         `json:"status"`
	CreatedAt       string         `json:"created_at"`
	User            *JoinedUser    `json:"users,omitempty"`
	Service         *JoinedService `json:"services,omitempty"`
}

type JoinedUser struct {
	FullName     *string `json:"full_name"`
	ProfileImage *string `json:"profile_image"`
}

type JoinedService struct {
	ServiceName *string `json:"service_name"`
}

// Appointment is the display record the admin views render. Every field is
// non-empty: nulls from the joins are coerced to placeholders at load time.
type Appointment struct {
	AppointmentID    string `json:"appointment_id"`
	UserFullName     string `json:"user_full_name"`
	UserProfileImage string `json:"user_profile_image"`
	ServiceName      string `json:"service_name"`
	AppointmentDate  string `json:"appointment_date"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
