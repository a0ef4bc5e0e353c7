package seed

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/takehiro-dev/costapp/internal/costing"
	"github.com/takehiro-dev/costapp/internal/store"
)

func newSeedTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE app_documents (
			key TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("create app_documents table: %v", err)
	}

	st, err := store.Open(db, zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func TestRunIsIdempotent(t *testing.T) {
	st := newSeedTestStore(t)

	for i := 0; i < 5; i++ {
		stats, err := Run(st)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts == 0 {
				t.Fatalf("expected inserts in first run")
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	snap := st.Snapshot()
	if len(snap.Products) != 2 {
		t.Fatalf("expected 2 sample products, got %d", len(snap.Products))
	}
}

func TestSampleReferencesResolve(t *testing.T) {
	d := Sample()

	for _, e := range d.CostEntries.Materials {
		if _, ok := d.FindMaterial(e.MaterialID); !ok {
			t.Fatalf("material entry %s references unknown material %s", e.ID, e.MaterialID)
		}
		if _, ok := d.FindProduct(e.ProductID); !ok {
			t.Fatalf("material entry %s references unknown product %s", e.ID, e.ProductID)
		}
	}
	for _, e := range d.CostEntries.EquipmentAllocations {
		if _, ok := d.FindEquipment(e.EquipmentID); !ok {
			t.Fatalf("allocation %s references unknown equipment %s", e.ID, e.EquipmentID)
		}
	}
	for _, e := range d.CostEntries.Logistics {
		if _, ok := d.FindShippingMethod(e.ShippingMethodID); !ok {
			t.Fatalf("logistics entry %s references unknown shipping method %s", e.ID, e.ShippingMethodID)
		}
	}
	for _, c := range d.Categories.Medium {
		if _, ok := d.FindLargeCategory(c.LargeID); !ok {
			t.Fatalf("medium category %s has orphan parent", c.ID)
		}
	}
	for _, c := range d.Categories.Small {
		if _, ok := d.FindMediumCategory(c.MediumID); !ok {
			t.Fatalf("small category %s has orphan parent", c.ID)
		}
	}
}

func TestSampleToteBreakdown(t *testing.T) {
	d := Sample()

	tote, ok := d.FindProduct(d.CostEntries.Development[0].ProductID)
	if !ok {
		t.Fatalf("sample tote product missing")
	}

	b := costing.UnitCosts(tote.ID, &d)

	// material 240+150, packaging 120+15, labor 0.5*1800+1.5*2000,
	// outsourcing 200, development ((150000+60000+40000)/2)/1000,
	// equipment (450000/5)*(2/8)/500 + (1200000/7)*(6/8)/500,
	// logistics 700, electricity 12.
	if b.Material != 390 {
		t.Fatalf("material = %v, want 390", b.Material)
	}
	if b.Packaging != 135 {
		t.Fatalf("packaging = %v, want 135", b.Packaging)
	}
	if b.Labor != 3900 {
		t.Fatalf("labor = %v, want 3900", b.Labor)
	}
	if b.Development != 125 {
		t.Fatalf("development = %v, want 125", b.Development)
	}
	if b.Total <= 0 {
		t.Fatalf("total should be positive, got %v", b.Total)
	}
}
