package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	s, err := NewStore(":memory:")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := &Record{
		Source:         "meeting.txt",
		Transcript:     "Advisor: What is your name?\nClient: Dan Foster.",
		ProfileJSON:    `{"personal":{"first_name":"Dan"}}`,
		ConfidenceJSON: `{"personal.first_name":0.8}`,
		Completion:     8.3,
	}
	id, err := s.SaveRecord(ctx, rec)
	if err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}
	if id <= 0 {
		t.Fatalf("id = %d", id)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not stamped")
	}

	got, err := s.GetRecord(ctx, id)
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if got.Source != rec.Source || got.Transcript != rec.Transcript {
		t.Fatalf("got %+v", got)
	}
	if got.ProfileJSON != rec.ProfileJSON || got.ConfidenceJSON != rec.ConfidenceJSON {
		t.Fatalf("json columns differ: %+v", got)
	}
	if got.Completion != rec.Completion {
		t.Fatalf("completion = %v, want %v", got.Completion, rec.Completion)
	}
}

func TestGetRecordNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRecord(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListRecordsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.SaveRecord(ctx, &Record{
			Source:    "meeting.txt",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveRecord %d: %v", i, err)
		}
	}

	records, err := s.ListRecords(ctx, ListOpts{})
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	if records[0].ID != 3 || records[2].ID != 1 {
		t.Fatalf("order = %d, %d, %d", records[0].ID, records[1].ID, records[2].ID)
	}

	page, err := s.ListRecords(ctx, ListOpts{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("ListRecords paginated: %v", err)
	}
	if len(page) != 1 || page[0].ID != 2 {
		t.Fatalf("page = %+v", page)
	}
}

func TestDeleteRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveRecord(ctx, &Record{Source: "meeting.txt"})
	if err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}
	if err := s.DeleteRecord(ctx, id); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	if _, err := s.GetRecord(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete, err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteRecord(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete, err = %v, want ErrNotFound", err)
	}
}

func TestMappingUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m := &Mapping{Name: "brokerage-intake", Spec: `{"fields":[]}`}
	if err := s.SaveMapping(ctx, m); err != nil {
		t.Fatalf("SaveMapping: %v", err)
	}

	m.Spec = `{"fields":[{"destination":"FirstName"}]}`
	if err := s.SaveMapping(ctx, m); err != nil {
		t.Fatalf("SaveMapping update: %v", err)
	}

	got, err := s.GetMapping(ctx, "brokerage-intake")
	if err != nil {
		t.Fatalf("GetMapping: %v", err)
	}
	if got.Spec != m.Spec {
		t.Fatalf("spec = %q, want updated spec", got.Spec)
	}

	all, err := s.ListMappings(ctx)
	if err != nil {
		t.Fatalf("ListMappings: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("upsert created a duplicate row: %d mappings", len(all))
	}
}

func TestMappingValidationAndNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveMapping(ctx, &Mapping{Spec: "{}"}); err == nil {
		t.Fatal("SaveMapping accepted an empty name")
	}
	if _, err := s.GetMapping(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetMapping err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteMapping(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeleteMapping err = %v, want ErrNotFound", err)
	}
}

func TestListMappingsSortedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.SaveMapping(ctx, &Mapping{Name: name, Spec: "{}"}); err != nil {
			t.Fatalf("SaveMapping %q: %v", name, err)
		}
	}

	all, err := s.ListMappings(ctx)
	if err != nil {
		t.Fatalf("ListMappings: %v", err)
	}
	var names []string
	for _, m := range all {
		names = append(names, m.Name)
	}
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveRecord(ctx, &Record{Source: "a.txt"}); err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}
	if _, err := s.SaveRecord(ctx, &Record{Source: "b.txt"}); err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}
	if err := s.SaveMapping(ctx, &Mapping{Name: "default", Spec: "{}"}); err != nil {
		t.Fatalf("SaveMapping: %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.RecordCount != 2 {
		t.Fatalf("RecordCount = %d, want 2", stats.RecordCount)
	}
	if stats.MappingCount != 1 {
		t.Fatalf("MappingCount = %d, want 1", stats.MappingCount)
	}
}
