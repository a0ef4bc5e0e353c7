package store

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/takehiro-dev/costapp/internal/dataset"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE app_documents (
			key TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("failed creating app_documents table: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func openTestStore(t *testing.T, db *sql.DB) *Store {
	t.Helper()

	s, err := Open(db, zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestAddAndReopenRoundTrips(t *testing.T) {
	db := newTestDB(t)
	s := openTestStore(t, db)

	material, err := s.AddMaterial(dataset.Material{Name: "革", Unit: "kg", UnitCost: 320, Currency: "JPY"})
	if err != nil {
		t.Fatalf("add material: %v", err)
	}
	if material.ID == "" {
		t.Fatalf("expected generated material id")
	}

	product, err := s.AddProduct(dataset.Product{
		Name:               "トートバッグ",
		Sizes:              []string{"S", "M"},
		ProductionLotSize:  50,
		ExpectedProduction: dataset.ExpectedProduction{Quantity: 1000, PeriodYears: 2},
	})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	reopened := openTestStore(t, db)
	snap := reopened.Snapshot()

	if len(snap.Materials) != 1 || snap.Materials[0].ID != material.ID {
		t.Fatalf("materials did not round-trip: %+v", snap.Materials)
	}
	got, ok := snap.FindProduct(product.ID)
	if !ok {
		t.Fatalf("product did not round-trip")
	}
	if got.ExpectedProduction.Quantity != 1000 || got.ExpectedProduction.PeriodYears != 2 {
		t.Fatalf("expected production did not round-trip: %+v", got.ExpectedProduction)
	}
	if len(got.Sizes) != 2 || got.Sizes[0] != "S" {
		t.Fatalf("sizes did not round-trip: %+v", got.Sizes)
	}
}

func TestAddMaterialCostEntryComputesCostPerUnit(t *testing.T) {
	db := newTestDB(t)
	s := openTestStore(t, db)

	material, err := s.AddMaterial(dataset.Material{Name: "革", UnitCost: 320, Currency: "JPY"})
	if err != nil {
		t.Fatalf("add material: %v", err)
	}

	entry, err := s.AddMaterialCostEntry(dataset.MaterialCostEntry{
		ProductID:  "p1",
		MaterialID: material.ID,
		UsageRatio: 75,
	})
	if err != nil {
		t.Fatalf("add material cost entry: %v", err)
	}

	if entry.CostPerUnit != 240 {
		t.Fatalf("costPerUnit = %v, want 240", entry.CostPerUnit)
	}
	if entry.Currency != "JPY" {
		t.Fatalf("currency = %q, want JPY", entry.Currency)
	}
}

func TestAddMaterialCostEntryKeepsStoredCostAfterMasterEdit(t *testing.T) {
	db := newTestDB(t)
	s := openTestStore(t, db)

	material, err := s.AddMaterial(dataset.Material{Name: "革", UnitCost: 320, Currency: "JPY"})
	if err != nil {
		t.Fatalf("add material: %v", err)
	}
	entry, err := s.AddMaterialCostEntry(dataset.MaterialCostEntry{
		ProductID: "p1", MaterialID: material.ID, UsageRatio: 50,
	})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if entry.CostPerUnit != 160 {
		t.Fatalf("costPerUnit = %v, want 160", entry.CostPerUnit)
	}

	// Registering another material never rewrites existing entries.
	if _, err := s.AddMaterial(dataset.Material{Name: "帆布", UnitCost: 9999, Currency: "JPY"}); err != nil {
		t.Fatalf("add second material: %v", err)
	}
	snap := s.Snapshot()
	if snap.CostEntries.Materials[0].CostPerUnit != 160 {
		t.Fatalf("stored costPerUnit changed: %+v", snap.CostEntries.Materials[0])
	}
}

func TestAddLogisticsCostEntryCopiesShippingMethod(t *testing.T) {
	db := newTestDB(t)
	s := openTestStore(t, db)

	method, err := s.AddShippingMethod(dataset.ShippingMethod{Name: "宅配便60", UnitCost: 700, Currency: "JPY"})
	if err != nil {
		t.Fatalf("add shipping method: %v", err)
	}

	entry, err := s.AddLogisticsCostEntry(dataset.LogisticsCostEntry{
		ProductID:        "p1",
		ShippingMethodID: method.ID,
	})
	if err != nil {
		t.Fatalf("add logistics entry: %v", err)
	}
	if entry.CostPerUnit != 700 || entry.Currency != "JPY" {
		t.Fatalf("entry did not copy method cost: %+v", entry)
	}
}

func TestSnapshotIsIsolatedFromStore(t *testing.T) {
	db := newTestDB(t)
	s := openTestStore(t, db)

	if _, err := s.AddMaterial(dataset.Material{Name: "革", UnitCost: 320}); err != nil {
		t.Fatalf("add material: %v", err)
	}

	snap := s.Snapshot()
	snap.Materials[0].UnitCost = 1

	if s.Snapshot().Materials[0].UnitCost != 320 {
		t.Fatalf("snapshot mutation leaked into store")
	}
}

func TestResetClearsDataAndDocument(t *testing.T) {
	db := newTestDB(t)
	s := openTestStore(t, db)

	if _, err := s.AddMaterial(dataset.Material{Name: "革"}); err != nil {
		t.Fatalf("add material: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if got := s.Snapshot(); len(got.Materials) != 0 {
		t.Fatalf("expected empty dataset after reset, got %+v", got.Materials)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM app_documents WHERE key = ?`, StorageKey).Scan(&count); err != nil {
		t.Fatalf("count documents: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected stored document to be deleted, found %d rows", count)
	}
}

func TestOpenToleratesCorruptDocument(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec(`INSERT INTO app_documents (key, body) VALUES (?, ?)`, StorageKey, "{not json")
	if err != nil {
		t.Fatalf("seed corrupt document: %v", err)
	}

	s := openTestStore(t, db)
	if got := s.Snapshot(); len(got.Materials) != 0 || len(got.Products) != 0 {
		t.Fatalf("expected empty dataset for corrupt document, got %+v", got)
	}
}
