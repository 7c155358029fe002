package main

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/registolab/registo/dbopen"
	"github.com/registolab/registo/registry"
	"github.com/registolab/registo/store"
	_ "modernc.org/sqlite"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	db := dbopen.OpenMemory(t)
	st, err := store.New(db, "cidadaos")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := st.Init(ctx); err != nil {
		t.Fatal(err)
	}
	err = st.InsertRecords(ctx, []registry.Record{{
		SubjectName: "Ana Pereira",
		Parent1:     "Maria Santos",
		DateOfBirth: "01-02-1990",
		Concelho:    "Praia",
		Posto:       "Achada",
		Type:        registry.TypeNational,
		SourceFile:  "SC_A_NACIONAIS_2024.pdf",
	}})
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestListRecordsHandler(t *testing.T) {
	st := seededStore(t)

	rec := httptest.NewRecorder()
	listRecordsHandler(st)(rec, httptest.NewRequest("GET", "/v1/records", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Records []registry.Record `json:"records"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Records) != 1 || body.Records[0].SubjectName != "Ana Pereira" {
		t.Fatalf("records = %+v", body.Records)
	}
}

func TestListRecordsHandlerByFile(t *testing.T) {
	st := seededStore(t)

	rec := httptest.NewRecorder()
	listRecordsHandler(st)(rec, httptest.NewRequest("GET", "/v1/records?file=missing.pdf", nil))

	var body struct {
		Records []registry.Record `json:"records"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Records) != 0 {
		t.Fatalf("records = %+v, want none for unknown file", body.Records)
	}
}

func TestCountRecordsHandler(t *testing.T) {
	st := seededStore(t)

	rec := httptest.NewRecorder()
	countRecordsHandler(st)(rec, httptest.NewRequest("GET", "/v1/records/count", nil))

	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 1 {
		t.Fatalf("count = %d, want 1", body.Count)
	}
}

func TestHealthHandler(t *testing.T) {
	st := seededStore(t)

	rec := httptest.NewRecorder()
	healthHandler(st)(rec, httptest.NewRequest("GET", "/v1/health", nil))

	var body struct {
		Status  string `json:"status"`
		Records int    `json:"records"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Records != 1 {
		t.Fatalf("body = %+v", body)
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/records?limit=5&offset=bogus", nil)
	if got := queryInt(r, "limit", 100); got != 5 {
		t.Fatalf("limit = %d, want 5", got)
	}
	if got := queryInt(r, "offset", 0); got != 0 {
		t.Fatalf("offset = %d, want default on bad input", got)
	}
	if got := queryInt(r, "missing", 7); got != 7 {
		t.Fatalf("missing = %d, want default", got)
	}
}
