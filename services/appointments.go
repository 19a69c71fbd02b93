package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/matchellatte/church-konek-web-admin/models"
	"github.com/matchellatte/church-konek-web-admin/store"
)

// Sort columns accepted by the appointments table.
const (
	SortByUser            = "user_full_name"
	SortByService         = "service_name"
	SortByStatus          = "status"
	SortByAppointmentDate = "appointment_date"
	SortByCreatedAt       = "created_at"
)

const appointmentProjection = "appointment_id, appointment_date, status, created_at, users (full_name, profile_image), services (service_name)"

// AppointmentList is the appointments view-model: the loaded sequence in
// gateway return order plus the search and sort state the table renders from.
type AppointmentList struct {
	store    store.Store
	collator *collate.Collator

	mu           sync.Mutex
	appointments []models.Appointment
	searchQuery  string
	sortColumn   string
	sortAsc      bool
	loading      bool
}

func NewAppointmentList(s store.Store) *AppointmentList {
	return &AppointmentList{
		store:      s,
		collator:   collate.New(language.English),
		sortColumn: SortByCreatedAt,
		sortAsc:    true,
	}
}

// Load replaces the base sequence with a fresh read of the appointments
// collection joined with users and services. On failure the previous
// sequence is kept.
func (l *AppointmentList) Load(ctx context.Context) error {
	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.loading = false
		l.mu.Unlock()
	}()

	data, err := l.store.FetchAllOrdered(ctx, "appointments", appointmentProjection, SortByCreatedAt, true)
	if err != nil {
		log.Printf("[AppointmentList] Error fetching appointments: %v", err)
		return err
	}

	var rows []models.AppointmentRow
	if err := json.Unmarshal(data, &rows); err != nil {
		log.Printf("[AppointmentList] Error decoding appointments: %v", err)
		return err
	}

	appointments := make([]models.Appointment, 0, len(rows))
	for _, row := range rows {
		appointments = append(appointments, normalizeAppointment(row))
	}

	l.mu.Lock()
	l.appointments = appointments
	l.mu.Unlock()
	return nil
}

// normalizeAppointment coerces null joins to placeholders so every consumer
// observes an already-sanitized record.
func normalizeAppointment(row models.AppointmentRow) models.Appointment {
	a := models.Appointment{
		AppointmentID:    row.AppointmentID,
		UserFullName:     models.UnknownUser,
		UserProfileImage: models.DefaultProfileImage,
		ServiceName:      models.UnknownService,
		AppointmentDate:  row.AppointmentDate,
		Status:           row.Status,
		CreatedAt:        row.CreatedAt,
	}
	if row.User != nil {
		if row.User.FullName != nil && *row.User.FullName != "" {
			a.UserFullName = *row.User.FullName
		}
		if row.User.ProfileImage != nil && *row.User.ProfileImage != "" {
			a.UserProfileImage = *row.User.ProfileImage
		}
	}
	if row.Service != nil && row.Service.ServiceName != nil && *row.Service.ServiceName != "" {
		a.ServiceName = *row.Service.ServiceName
	}
	return a
}

func (l *AppointmentList) SetQuery(query string) {
	l.mu.Lock()
	l.searchQuery = query
	l.mu.Unlock()
}

// SortBy selects a sort column and flips the direction relative to the
// previous state. Selecting a new column does NOT reset the direction: the
// admin UI's sort control toggles on every selection, even when the column
// changes. Unknown columns are ignored.
func (l *AppointmentList) SortBy(column string) {
	switch column {
	case SortByUser, SortByService, SortByStatus, SortByAppointmentDate, SortByCreatedAt:
	default:
		return
	}

	l.mu.Lock()
	l.sortColumn = column
	l.sortAsc = !l.sortAsc
	l.mu.Unlock()
}

func (l *AppointmentList) Sort() (column string, ascending bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sortColumn, l.sortAsc
}

func (l *AppointmentList) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Total is the size of the loaded sequence, before any filtering.
func (l *AppointmentList) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.appointments)
}

// All returns a copy of the base sequence in gateway return order.
func (l *AppointmentList) All() []models.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Appointment, len(l.appointments))
	copy(out, l.appointments)
	return out
}

// Rows returns the filtered, sorted view the table renders. The base
// sequence is never mutated.
func (l *AppointmentList) Rows() []models.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()

	query := strings.ToLower(l.searchQuery)
	column := l.sortColumn
	asc := l.sortAsc

	filtered := make([]models.Appointment, 0, len(l.appointments))
	for _, a := range l.appointments {
		if query == "" ||
			strings.Contains(strings.ToLower(a.UserFullName), query) ||
			strings.Contains(strings.ToLower(a.ServiceName), query) ||
			strings.Contains(strings.ToLower(a.Status), query) {
			filtered = append(filtered, a)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		cmp := l.compare(filtered[i], filtered[j], column)
		if asc {
			return cmp < 0
		}
		return cmp > 0
	})

	return filtered
}

func (l *AppointmentList) compare(a, b models.Appointment, column string) int {
	switch column {
	case SortByUser:
		return l.collator.CompareString(a.UserFullName, b.UserFullName)
	case SortByService:
		return l.collator.CompareString(a.ServiceName, b.ServiceName)
	case SortByStatus:
		return l.collator.CompareString(a.Status, b.Status)
	case SortByAppointmentDate:
		return compareDates(a.AppointmentDate, b.AppointmentDate)
	default:
		return compareDates(a.CreatedAt, b.CreatedAt)
	}
}

// compareDates orders two timestamp strings chronologically, falling back to
// a plain string comparison when either side does not parse.
func compareDates(a, b string) int {
	ta, errA := parseTimestamp(a)
	tb, errB := parseTimestamp(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	if ta.Before(tb) {
		return -1
	}
	if ta.After(tb) {
		return 1
	}
	return 0
}

func parseTimestamp(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// UpdateStatus writes the new status for one appointment, then mirrors the
// change into the local copy of that record. The record keeps its position
// in the sequence; views re-derive their sorted/filtered order from the
// mutated base. The status literal is written verbatim, unchecked against
// the known values. On a gateway failure the local state is left untouched.
func (l *AppointmentList) UpdateStatus(ctx context.Context, appointmentID, status string) error {
	err := l.store.UpdateField(ctx, "appointments", "appointment_id", appointmentID, map[string]interface{}{
		"status": status,
	})
	if err != nil {
		log.Printf("[AppointmentList] Error updating status for %s: %v", appointmentID, err)
		return err
	}

	l.mu.Lock()
	for i := range l.appointments {
		if l.appointments[i].AppointmentID == appointmentID {
			l.appointments[i].Status = status
			break
		}
	}
	l.mu.Unlock()
	return nil
}
