package store

import (
	"context"
	"fmt"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

// Store is the single gateway to the hosted backend. Every call is one
// request against one collection, with no retries and no batching.
type Store interface {
	// FetchAll reads every row of a collection and returns the raw row JSON.
	FetchAll(ctx context.Context, collection, projection string) ([]byte, error)
	// FetchAllOrdered is FetchAll with a server-side order column.
	FetchAllOrdered(ctx context.Context, collection, projection, orderColumn string, ascending bool) ([]byte, error)
	// UpdateField writes fieldUpdates to the rows where matchColumn equals
	// matchValue.
	UpdateField(ctx context.Context, collection, matchColumn, matchValue string, fieldUpdates map[string]interface{}) error
}

// GatewayError is any network/auth/query failure from the backend.
type GatewayError struct {
	Collection string
	Op         string
	Err        error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("supabase %s on %q failed: %v", e.Op, e.Collection, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

type SupabaseStore struct {
	client *supa.Client
}

func NewSupabaseStore(client *supa.Client) *SupabaseStore {
	return &SupabaseStore{client: client}
}

func (s *SupabaseStore) FetchAll(ctx context.Context, collection, projection string) ([]byte, error) {
	if projection == "" {
		projection = "*"
	}

	data, _, err := s.client.From(collection).
		Select(projection, "", false).
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, &GatewayError{Collection: collection, Op: "select", Err: err}
	}
	return data, nil
}

func (s *SupabaseStore) FetchAllOrdered(ctx context.Context, collection, projection, orderColumn string, ascending bool) ([]byte, error) {
	if projection == "" {
		projection = "*"
	}

	data, _, err := s.client.From(collection).
		Select(projection, "", false).
		Order(orderColumn, &postgrest.OrderOpts{Ascending: ascending}).
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, &GatewayError{Collection: collection, Op: "select", Err: err}
	}
	return data, nil
}

func (s *SupabaseStore) UpdateField(ctx context.Context, collection, matchColumn, matchValue string, fieldUpdates map[string]interface{}) error {
	_, _, err := s.client.From(collection).
		Update(fieldUpdates, "", "").
		Eq(matchColumn, matchValue).
		ExecuteWithContext(ctx)
	if err != nil {
		return &GatewayError{Collection: collection, Op: "update", Err: err}
	}
	return nil
}
