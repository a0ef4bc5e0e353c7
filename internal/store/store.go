// Package store persists the whole application dataset as one JSON document
// under a single key. Mutations build a new snapshot, persist it, and only
// then publish it, so readers always see a fully-materialized dataset.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/takehiro-dev/costapp/internal/dataset"
)

// StorageKey is the document key the dataset lives under.
const StorageKey = "cost-app-data-v1"

// Store owns the current dataset and its durable copy.
type Store struct {
	db  *sql.DB
	log zerolog.Logger

	mu   sync.Mutex
	data dataset.Dataset
}

// Open loads the stored document into memory. A missing row means a fresh
// install; an unparseable row is logged and treated the same way, matching
// the tolerant hydrate of the original app.
func Open(db *sql.DB, log zerolog.Logger) (*Store, error) {
	s := &Store{db: db, log: log}

	var body string
	err := db.QueryRow(`SELECT body FROM app_documents WHERE key = ?`, StorageKey).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read stored document: %w", err)
	}

	if err := json.Unmarshal([]byte(body), &s.data); err != nil {
		s.log.Warn().Err(err).Msg("stored document is not valid JSON, starting empty")
		s.data = dataset.Dataset{}
	}
	return s, nil
}

// Snapshot returns a deep copy of the current dataset for reads and
// aggregation.
func (s *Store) Snapshot() dataset.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// mutate applies fn to a copy of the current dataset, persists the copy, and
// publishes it only if the save succeeded.
func (s *Store) mutate(fn func(*dataset.Dataset)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	fn(&next)
	if err := s.save(&next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *Store) save(d *dataset.Dataset) error {
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO app_documents (key, body, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			body = excluded.body,
			updated_at = CURRENT_TIMESTAMP
	`, StorageKey, string(body))
	if err != nil {
		return fmt.Errorf("save dataset document: %w", err)
	}
	return nil
}

// Reset clears all data and removes the stored document.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM app_documents WHERE key = ?`, StorageKey); err != nil {
		return fmt.Errorf("delete dataset document: %w", err)
	}
	s.data = dataset.Dataset{}
	return nil
}

// ReplaceAll swaps in a complete dataset and persists it. Used by seeding.
func (s *Store) ReplaceAll(d dataset.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := d.Clone()
	if err := s.save(&next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// AddLargeCategory appends a large category with a fresh id.
func (s *Store) AddLargeCategory(c dataset.CategoryLarge) (dataset.CategoryLarge, error) {
	c.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.Categories.Large = append(d.Categories.Large, c)
	})
	return c, err
}

// AddMediumCategory appends a medium category with a fresh id.
func (s *Store) AddMediumCategory(c dataset.CategoryMedium) (dataset.CategoryMedium, error) {
	c.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.Categories.Medium = append(d.Categories.Medium, c)
	})
	return c, err
}

// AddSmallCategory appends a small category with a fresh id.
func (s *Store) AddSmallCategory(c dataset.CategorySmall) (dataset.CategorySmall, error) {
	c.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.Categories.Small = append(d.Categories.Small, c)
	})
	return c, err
}

// AddMaterial appends a material master record with a fresh id.
func (s *Store) AddMaterial(m dataset.Material) (dataset.Material, error) {
	m.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.Materials = append(d.Materials, m)
	})
	return m, err
}

// AddPackagingItem appends a packaging master record with a fresh id.
func (s *Store) AddPackagingItem(p dataset.PackagingItem) (dataset.PackagingItem, error) {
	p.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.PackagingItems = append(d.PackagingItems, p)
	})
	return p, err
}

// AddLaborRole appends a labor-role master record with a fresh id.
func (s *Store) AddLaborRole(r dataset.LaborRole) (dataset.LaborRole, error) {
	r.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.LaborRoles = append(d.LaborRoles, r)
	})
	return r, err
}

// AddEquipment appends an equipment master record with a fresh id.
func (s *Store) AddEquipment(e dataset.Equipment) (dataset.Equipment, error) {
	e.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.Equipments = append(d.Equipments, e)
	})
	return e, err
}

// AddShippingMethod appends a shipping-method master record with a fresh id.
func (s *Store) AddShippingMethod(m dataset.ShippingMethod) (dataset.ShippingMethod, error) {
	m.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.ShippingMethods = append(d.ShippingMethods, m)
	})
	return m, err
}

// AddProduct appends a product with a fresh id.
func (s *Store) AddProduct(p dataset.Product) (dataset.Product, error) {
	p.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.Products = append(d.Products, p)
	})
	return p, err
}

// AddMaterialCostEntry appends a material cost entry. The per-unit cost and
// currency are fixed here, from the master record as it exists right now;
// later edits to the material do not touch existing entries.
func (s *Store) AddMaterialCostEntry(e dataset.MaterialCostEntry) (dataset.MaterialCostEntry, error) {
	e.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		if m, ok := d.FindMaterial(e.MaterialID); ok {
			e.CostPerUnit = m.UnitCost * e.UsageRatio / 100
			e.Currency = m.Currency
		}
		d.CostEntries.Materials = append(d.CostEntries.Materials, e)
	})
	return e, err
}

// AddPackagingCostEntry appends a packaging cost entry, copying the item's
// current unit cost and currency.
func (s *Store) AddPackagingCostEntry(e dataset.PackagingCostEntry) (dataset.PackagingCostEntry, error) {
	e.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		if item, ok := d.FindPackagingItem(e.PackagingItemID); ok {
			e.CostPerUnit = item.UnitCost
			e.Currency = item.Currency
		}
		d.CostEntries.Packaging = append(d.CostEntries.Packaging, e)
	})
	return e, err
}

// AddLaborCostEntry appends a labor cost entry.
func (s *Store) AddLaborCostEntry(e dataset.LaborCostEntry) (dataset.LaborCostEntry, error) {
	e.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.CostEntries.Labor = append(d.CostEntries.Labor, e)
	})
	return e, err
}

// AddOutsourcingCostEntry appends an outsourcing cost entry.
func (s *Store) AddOutsourcingCostEntry(e dataset.OutsourcingCostEntry) (dataset.OutsourcingCostEntry, error) {
	e.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.CostEntries.Outsourcing = append(d.CostEntries.Outsourcing, e)
	})
	return e, err
}

// AddDevelopmentCostEntry appends a development cost entry.
func (s *Store) AddDevelopmentCostEntry(e dataset.DevelopmentCostEntry) (dataset.DevelopmentCostEntry, error) {
	e.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.CostEntries.Development = append(d.CostEntries.Development, e)
	})
	return e, err
}

// AddEquipmentAllocation appends an equipment allocation entry.
func (s *Store) AddEquipmentAllocation(e dataset.EquipmentAllocationEntry) (dataset.EquipmentAllocationEntry, error) {
	e.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.CostEntries.EquipmentAllocations = append(d.CostEntries.EquipmentAllocations, e)
	})
	return e, err
}

// AddLogisticsCostEntry appends a logistics cost entry, copying the shipping
// method's current unit cost and currency.
func (s *Store) AddLogisticsCostEntry(e dataset.LogisticsCostEntry) (dataset.LogisticsCostEntry, error) {
	e.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		if m, ok := d.FindShippingMethod(e.ShippingMethodID); ok {
			e.CostPerUnit = m.UnitCost
			e.Currency = m.Currency
		}
		d.CostEntries.Logistics = append(d.CostEntries.Logistics, e)
	})
	return e, err
}

// AddElectricityCostEntry appends an electricity cost entry.
func (s *Store) AddElectricityCostEntry(e dataset.ElectricityCostEntry) (dataset.ElectricityCostEntry, error) {
	e.ID = dataset.NewID()
	err := s.mutate(func(d *dataset.Dataset) {
		d.CostEntries.Electricity = append(d.CostEntries.Electricity, e)
	})
	return e, err
}
