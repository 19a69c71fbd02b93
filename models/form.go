package models

// FormRecord is one row of a per-service intake form table. The shape is
// defined entirely by the table schema, so it is kept as an open record.
type FormRecord map[string]interface{}

// CommunionForm is the one form the admin UI renders with named fields.
type CommunionForm struct {
	ChildName     string `json:"child_name"`
	Birthday      string `json:"birthday"`
	GuardianName  string `json:"guardian_name"`
	ContactNumber string `json:"contact_number"`
	CommunionDate string `json:"communion_date"`
}
