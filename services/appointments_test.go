package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/matchellatte/church-konek-web-admin/models"
)

type updateCall struct {
	collection  string
	matchColumn string
	matchValue  string
	fields      map[string]interface{}
}

type fakeStore struct {
	data      map[string][]byte
	fetchErr  error
	updateErr error
	updates   []updateCall
}

func (f *fakeStore) FetchAll(ctx context.Context, collection, projection string) ([]byte, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	data, ok := f.data[collection]
	if !ok {
		return []byte("[]"), nil
	}
	return data, nil
}

func (f *fakeStore) FetchAllOrdered(ctx context.Context, collection, projection, orderColumn string, ascending bool) ([]byte, error) {
	return f.FetchAll(ctx, collection, projection)
}

func (f *fakeStore) UpdateField(ctx context.Context, collection, matchColumn, matchValue string, fieldUpdates map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, updateCall{
		collection:  collection,
		matchColumn: matchColumn,
		matchValue:  matchValue,
		fields:      fieldUpdates,
	})
	return nil
}

func strPtr(s string) *string {
	return &s
}

func rowsJSON(t *testing.T, rows []models.AppointmentRow) []byte {
	t.Helper()
	data, err := json.Marshal(rows)
	if err != nil {
		t.Fatalf("marshal rows: %v", err)
	}
	return data
}

func TestLoad_CoercesNullJoins(t *testing.T) {
	rows := []models.AppointmentRow{
		{
			AppointmentID:   "a1",
			AppointmentDate: "2024-11-05",
			Status:          models.StatusPending,
			CreatedAt:       "2024-10-01T08:00:00Z",
			User: &models.JoinedUser{
				FullName:     strPtr("Maria Santos"),
				ProfileImage: strPtr("/images/maria.jpg"),
			},
			Service: &models.JoinedService{ServiceName: strPtr("Wedding")},
		},
		{
			AppointmentID:   "a2",
			AppointmentDate: "2024-11-06",
			Status:          models.StatusApproved,
			CreatedAt:       "2024-10-02T08:00:00Z",
		},
	}

	list := NewAppointmentList(&fakeStore{data: map[string][]byte{
		"appointments": rowsJSON(t, rows),
	}})

	if err := list.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list.Loading() {
		t.Fatal("loading flag still set after Load")
	}

	got := list.All()
	if len(got) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(got))
	}
	if got[0].UserFullName != "Maria Santos" || got[0].ServiceName != "Wedding" {
		t.Fatalf("joined row mangled: %+v", got[0])
	}
	if got[1].UserFullName != models.UnknownUser {
		t.Fatalf("expected %q, got %q", models.UnknownUser, got[1].UserFullName)
	}
	if got[1].ServiceName != models.UnknownService {
		t.Fatalf("expected %q, got %q", models.UnknownService, got[1].ServiceName)
	}
	if got[1].UserProfileImage != models.DefaultProfileImage {
		t.Fatalf("expected placeholder image, got %q", got[1].UserProfileImage)
	}
}

func TestLoad_GatewayErrorKeepsState(t *testing.T) {
	st := &fakeStore{data: map[string][]byte{
		"appointments": rowsJSON(t, []models.AppointmentRow{{AppointmentID: "a1", Status: models.StatusPending}}),
	}}
	list := NewAppointmentList(st)
	if err := list.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	st.fetchErr = errors.New("connection refused")
	if err := list.Load(context.Background()); err == nil {
		t.Fatal("expected error from failed load")
	}
	if list.Loading() {
		t.Fatal("loading flag still set after failed Load")
	}
	if got := list.All(); len(got) != 1 || got[0].AppointmentID != "a1" {
		t.Fatalf("failed load should keep previous sequence, got %+v", got)
	}
}

func seedList(appointments []models.Appointment) *AppointmentList {
	list := NewAppointmentList(&fakeStore{})
	list.appointments = appointments
	return list
}

func TestSearch_FiltersAndIsIdempotent(t *testing.T) {
	list := seedList([]models.Appointment{
		{AppointmentID: "a1", UserFullName: "Maria Santos", ServiceName: "Wedding", Status: "pending"},
		{AppointmentID: "a2", UserFullName: "Jose Cruz", ServiceName: "Baptism", Status: "approved"},
		{AppointmentID: "a3", UserFullName: "Ana Reyes", ServiceName: "Wedding", Status: "completed"},
	})

	list.SetQuery("WEDDING")
	first := list.Rows()
	if len(first) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(first))
	}
	for _, a := range first {
		if a.ServiceName != "Wedding" {
			t.Fatalf("unexpected match: %+v", a)
		}
	}

	// Filtering an already-matching view by the same query changes nothing.
	second := list.Rows()
	if len(second) != len(first) {
		t.Fatalf("search not idempotent: %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].AppointmentID != second[i].AppointmentID {
			t.Fatalf("search not idempotent at %d: %q vs %q", i, first[i].AppointmentID, second[i].AppointmentID)
		}
	}

	// The base sequence is untouched.
	if list.Total() != 3 {
		t.Fatalf("base sequence mutated by search, total %d", list.Total())
	}

	// Status text is searchable too.
	list.SetQuery("approved")
	if rows := list.Rows(); len(rows) != 1 || rows[0].AppointmentID != "a2" {
		t.Fatalf("status search failed: %+v", rows)
	}
}

func TestSortBy_TogglesDirection(t *testing.T) {
	list := seedList(nil)

	if column, asc := list.Sort(); column != SortByCreatedAt || !asc {
		t.Fatalf("unexpected defaults: %s asc=%v", column, asc)
	}

	// Selecting a column flips the direction, even on a column change.
	list.SortBy(SortByUser)
	if column, asc := list.Sort(); column != SortByUser || asc {
		t.Fatalf("expected user_full_name desc, got %s asc=%v", column, asc)
	}

	list.SortBy(SortByService)
	if column, asc := list.Sort(); column != SortByService || !asc {
		t.Fatalf("expected service_name asc, got %s asc=%v", column, asc)
	}

	// Unknown columns are ignored entirely.
	list.SortBy("nonsense")
	if column, asc := list.Sort(); column != SortByService || !asc {
		t.Fatalf("unknown column changed state: %s asc=%v", column, asc)
	}
}

func TestSort_StableAndReversible(t *testing.T) {
	list := seedList([]models.Appointment{
		{AppointmentID: "a1", UserFullName: "Carlos", CreatedAt: "2024-01-03T00:00:00Z"},
		{AppointmentID: "a2", UserFullName: "Ana", CreatedAt: "2024-01-01T00:00:00Z"},
		{AppointmentID: "a3", UserFullName: "Benita", CreatedAt: "2024-01-02T00:00:00Z"},
	})

	list.SortBy(SortByUser) // desc
	list.SortBy(SortByUser) // asc
	asc := list.Rows()
	if asc[0].UserFullName != "Ana" || asc[1].UserFullName != "Benita" || asc[2].UserFullName != "Carlos" {
		t.Fatalf("ascending order wrong: %+v", asc)
	}

	list.SortBy(SortByUser) // desc again
	desc := list.Rows()
	for i := range asc {
		if asc[i].AppointmentID != desc[len(desc)-1-i].AppointmentID {
			t.Fatalf("descending is not the exact reverse at %d", i)
		}
	}
}

func TestSort_ChronologicalByDate(t *testing.T) {
	list := seedList([]models.Appointment{
		{AppointmentID: "a1", AppointmentDate: "2024-12-01"},
		{AppointmentID: "a2", AppointmentDate: "2024-02-15"},
		{AppointmentID: "a3", AppointmentDate: "2024-07-30"},
	})

	list.SortBy(SortByAppointmentDate) // desc
	list.SortBy(SortByAppointmentDate) // asc
	rows := list.Rows()
	want := []string{"a2", "a3", "a1"}
	for i, id := range want {
		if rows[i].AppointmentID != id {
			t.Fatalf("chronological order wrong at %d: got %s want %s", i, rows[i].AppointmentID, id)
		}
	}
}

func TestUpdateStatus_PositionPreservingSingleRecord(t *testing.T) {
	st := &fakeStore{}
	list := NewAppointmentList(st)
	list.appointments = []models.Appointment{
		{AppointmentID: "1", UserFullName: "Maria Santos", ServiceName: "Wedding", Status: models.StatusPending},
		{AppointmentID: "2", UserFullName: "Jose Cruz", ServiceName: "Baptism", Status: models.StatusApproved},
	}

	if err := list.UpdateStatus(context.Background(), "1", models.StatusApproved); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got := list.All()
	if got[0].AppointmentID != "1" || got[1].AppointmentID != "2" {
		t.Fatalf("sequence reordered: %+v", got)
	}
	if got[0].Status != models.StatusApproved {
		t.Fatalf("status not updated: %q", got[0].Status)
	}
	if got[0].UserFullName != "Maria Santos" || got[0].ServiceName != "Wedding" {
		t.Fatalf("other fields changed: %+v", got[0])
	}
	if got[1].Status != models.StatusApproved {
		t.Fatalf("unrelated record touched: %+v", got[1])
	}

	if len(st.updates) != 1 {
		t.Fatalf("expected 1 gateway write, got %d", len(st.updates))
	}
	call := st.updates[0]
	if call.collection != "appointments" || call.matchColumn != "appointment_id" || call.matchValue != "1" {
		t.Fatalf("write scoped wrong: %+v", call)
	}
	if call.fields["status"] != models.StatusApproved {
		t.Fatalf("wrong field update: %+v", call.fields)
	}
}

func TestUpdateStatus_FailureLeavesLocalState(t *testing.T) {
	st := &fakeStore{updateErr: errors.New("permission denied")}
	list := NewAppointmentList(st)
	list.appointments = []models.Appointment{
		{AppointmentID: "1", Status: models.StatusPending},
	}

	if err := list.UpdateStatus(context.Background(), "1", models.StatusCancelled); err == nil {
		t.Fatal("expected error from failed write")
	}
	if got := list.All(); got[0].Status != models.StatusPending {
		t.Fatalf("local state changed on failed write: %q", got[0].Status)
	}
}
