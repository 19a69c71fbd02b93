package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/matchellatte/church-konek-web-admin/models"
	"github.com/matchellatte/church-konek-web-admin/store"
)

// ErrUnknownService is returned for a service slug outside the fixed map.
var ErrUnknownService = errors.New("unknown service")

// serviceTables maps the admin panel's service slugs to their Supabase
// intake form tables.
var serviceTables = map[string]string{
	"first-communion":  "firstcommunionforms",
	"kumpil":           "kumpilforms",
	"special-mass":     "specialmassforms",
	"wedding":          "weddingforms",
	"house-blessing":   "houseblessingforms",
	"prayer-intention": "prayerintentionforms",
	"baptism":          "baptismforms",
	"funeral-mass":     "funeralmassforms",
}

// FormCatalog loads per-service intake form rows. Each table has its own
// schema, so rows are treated as open records.
type FormCatalog struct {
	store store.Store
}

func NewFormCatalog(s store.Store) *FormCatalog {
	return &FormCatalog{store: s}
}

func (f *FormCatalog) TableFor(slug string) (string, error) {
	table, ok := serviceTables[slug]
	if !ok {
		return "", ErrUnknownService
	}
	return table, nil
}

// LoadRecords reads every row of the service's form table. The returned
// columns are the keys of the first row in their JSON order; rows with
// extra fields beyond the first row's keys are truncated in display.
func (f *FormCatalog) LoadRecords(ctx context.Context, slug string) ([]models.FormRecord, []string, error) {
	table, err := f.TableFor(slug)
	if err != nil {
		return nil, nil, err
	}

	data, err := f.store.FetchAll(ctx, table, "*")
	if err != nil {
		log.Printf("[FormCatalog] Error fetching %s: %v", table, err)
		return nil, nil, err
	}

	var records []models.FormRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("[FormCatalog] Error decoding %s: %v", table, err)
		return nil, nil, err
	}

	return records, firstRowColumns(data), nil
}

// LoadCommunionForms reads the first communion table into its typed shape.
func (f *FormCatalog) LoadCommunionForms(ctx context.Context) ([]models.CommunionForm, error) {
	data, err := f.store.FetchAll(ctx, "firstcommunionforms", "*")
	if err != nil {
		log.Printf("[FormCatalog] Error fetching firstcommunionforms: %v", err)
		return nil, err
	}

	var forms []models.CommunionForm
	if err := json.Unmarshal(data, &forms); err != nil {
		log.Printf("[FormCatalog] Error decoding firstcommunionforms: %v", err)
		return nil, err
	}
	return forms, nil
}

// firstRowColumns extracts the keys of the first object of a JSON array in
// the order they appear on the wire. json.Unmarshal into a map loses that
// order, so the first row is walked token by token.
func firstRowColumns(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))

	if tok, err := dec.Token(); err != nil || tok != json.Delim('[') {
		return nil
	}
	if !dec.More() {
		return nil
	}
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}

	var columns []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		key, ok := tok.(string)
		if !ok {
			break
		}
		columns = append(columns, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			break
		}
	}
	return columns
}

// FormViewer is the detail panel for a single form record. It is either
// closed or open on one record; the record is already in memory, so there
// is no loading state.
type FormViewer struct {
	selected *models.FormRecord
}

func (v *FormViewer) Select(record models.FormRecord) {
	v.selected = &record
}

func (v *FormViewer) Dismiss() {
	v.selected = nil
}

func (v *FormViewer) Open() bool {
	return v.selected != nil
}

func (v *FormViewer) Selected() (models.FormRecord, bool) {
	if v.selected == nil {
		return nil, false
	}
	return *v.selected, true
}
