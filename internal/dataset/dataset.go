// Package dataset holds the normalized application data: master-data
// registries, the product registry, and per-category cost-entry lists, all
// keyed by generated opaque string ids. It is pure data plus lookups; the
// store owns mutation and persistence, the costing package owns arithmetic.
package dataset

import (
	"strings"

	"github.com/google/uuid"
)

// Categories groups the three-level product category tree.
type Categories struct {
	Large  []CategoryLarge  `json:"large"`
	Medium []CategoryMedium `json:"medium"`
	Small  []CategorySmall  `json:"small"`
}

// CostEntries groups the append-only cost-entry lists, one per category.
type CostEntries struct {
	Materials            []MaterialCostEntry        `json:"materials"`
	Packaging            []PackagingCostEntry       `json:"packaging"`
	Labor                []LaborCostEntry           `json:"labor"`
	Outsourcing          []OutsourcingCostEntry     `json:"outsourcing"`
	Development          []DevelopmentCostEntry     `json:"development"`
	EquipmentAllocations []EquipmentAllocationEntry `json:"equipmentAllocations"`
	Logistics            []LogisticsCostEntry       `json:"logistics"`
	Electricity          []ElectricityCostEntry     `json:"electricity"`
}

// Dataset is one full application snapshot. It serializes as a single JSON
// document and must round-trip through the store unchanged.
type Dataset struct {
	Categories      Categories       `json:"categories"`
	Materials       []Material       `json:"materials"`
	PackagingItems  []PackagingItem  `json:"packagingItems"`
	LaborRoles      []LaborRole      `json:"laborRoles"`
	Equipments      []Equipment      `json:"equipments"`
	ShippingMethods []ShippingMethod `json:"shippingMethods"`
	Products        []Product        `json:"products"`
	CostEntries     CostEntries      `json:"costEntries"`
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}

// Lookups return (record, false) for unknown ids. A dangling reference is a
/// normal outcome, not an error: the caller treats it as "contributes nothing".

func (d *Dataset) FindMaterial(id string) (Material, bool) {
	for _, m := range d.Materials {
		if m.ID == id {
			return m, true
		}
	}
	return Material{}, false
}

func (d *Dataset) FindPackagingItem(id string) (PackagingItem, bool) {
	for _, p := range d.PackagingItems {
		if p.ID == id {
			return p, true
		}
	}
	return PackagingItem{}, false
}

func (d *Dataset) FindLaborRole(id string) (LaborRole, bool) {
	for _, r := range d.LaborRoles {
		if r.ID == id {
			return r, true
		}
	}
	return LaborRole{}, false
}

func (d *Dataset) FindEquipment(id string) (Equipment, bool) {
	for _, e := range d.Equipments {
		if e.ID == id {
			return e, true
		}
	}
	return Equipment{}, false
}

func (d *Dataset) FindShippingMethod(id string) (ShippingMethod, bool) {
	for _, s := range d.ShippingMethods {
		if s.ID == id {
			return s, true
		}
	}
	return ShippingMethod{}, false
}

func (d *Dataset) FindProduct(id string) (Product, bool) {
	for _, p := range d.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (d *Dataset) FindLargeCategory(id string) (CategoryLarge, bool) {
	for _, c := range d.Categories.Large {
		if c.ID == id {
			return c, true
		}
	}
	return CategoryLarge{}, false
}

func (d *Dataset) FindMediumCategory(id string) (CategoryMedium, bool) {
	for _, c := range d.Categories.Medium {
		if c.ID == id {
			return c, true
		}
	}
	return CategoryMedium{}, false
}

func (d *Dataset) FindSmallCategory(id string) (CategorySmall, bool) {
	for _, c := range d.Categories.Small {
		if c.ID == id {
			return c, true
		}
	}
	return CategorySmall{}, false
}

// MaterialEntriesFor returns the product's material cost entries in
// insertion order. The other *EntriesFor helpers behave the same way; an
// empty result is valid and common.
func (d *Dataset) MaterialEntriesFor(productID string) []MaterialCostEntry {
	var out []MaterialCostEntry
	for _, e := range d.CostEntries.Materials {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}

func (d *Dataset) PackagingEntriesFor(productID string) []PackagingCostEntry {
	var out []PackagingCostEntry
	for _, e := range d.CostEntries.Packaging {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}

func (d *Dataset) LaborEntriesFor(productID string) []LaborCostEntry {
	var out []LaborCostEntry
	for _, e := range d.CostEntries.Labor {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}

func (d *Dataset) OutsourcingEntriesFor(productID string) []OutsourcingCostEntry {
	var out []OutsourcingCostEntry
	for _, e := range d.CostEntries.Outsourcing {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}

func (d *Dataset) DevelopmentEntriesFor(productID string) []DevelopmentCostEntry {
	var out []DevelopmentCostEntry
	for _, e := range d.CostEntries.Development {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}

func (d *Dataset) EquipmentAllocationsFor(productID string) []EquipmentAllocationEntry {
	var out []EquipmentAllocationEntry
	for _, e := range d.CostEntries.EquipmentAllocations {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}

func (d *Dataset) LogisticsEntriesFor(productID string) []LogisticsCostEntry {
	var out []LogisticsCostEntry
	for _, e := range d.CostEntries.Logistics {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}

func (d *Dataset) ElectricityEntriesFor(productID string) []ElectricityCostEntry {
	var out []ElectricityCostEntry
	for _, e := range d.CostEntries.Electricity {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}

// CategoryPath joins the names of the product's resolved categories with
// " / ". Unresolved references are skipped; a product with no resolvable
// category renders as "-".
func (d *Dataset) CategoryPath(p Product) string {
	var names []string
	if c, ok := d.FindLargeCategory(p.CategoryLargeID); ok {
		names = append(names, c.Name)
	}
	if c, ok := d.FindMediumCategory(p.CategoryMediumID); ok {
		names = append(names, c.Name)
	}
	if c, ok := d.FindSmallCategory(p.CategorySmallID); ok {
		names = append(names, c.Name)
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " / ")
}

// Clone returns a deep copy. Readers always work on a clone so that an
// in-flight aggregation never observes a concurrent append.
func (d *Dataset) Clone() Dataset {
	out := Dataset{
		Categories: Categories{
			Large:  append([]CategoryLarge(nil), d.Categories.Large...),
			Medium: append([]CategoryMedium(nil), d.Categories.Medium...),
			Small:  append([]CategorySmall(nil), d.Categories.Small...),
		},
		Materials:       append([]Material(nil), d.Materials...),
		PackagingItems:  append([]PackagingItem(nil), d.PackagingItems...),
		LaborRoles:      append([]LaborRole(nil), d.LaborRoles...),
		Equipments:      append([]Equipment(nil), d.Equipments...),
		ShippingMethods: append([]ShippingMethod(nil), d.ShippingMethods...),
		Products:        append([]Product(nil), d.Products...),
		CostEntries: CostEntries{
			Materials:            append([]MaterialCostEntry(nil), d.CostEntries.Materials...),
			Packaging:            append([]PackagingCostEntry(nil), d.CostEntries.Packaging...),
			Labor:                append([]LaborCostEntry(nil), d.CostEntries.Labor...),
			Outsourcing:          append([]OutsourcingCostEntry(nil), d.CostEntries.Outsourcing...),
			Development:          append([]DevelopmentCostEntry(nil), d.CostEntries.Development...),
			EquipmentAllocations: append([]EquipmentAllocationEntry(nil), d.CostEntries.EquipmentAllocations...),
			Logistics:            append([]LogisticsCostEntry(nil), d.CostEntries.Logistics...),
			Electricity:          append([]ElectricityCostEntry(nil), d.CostEntries.Electricity...),
		},
	}

	for i, p := range out.Products {
		out.Products[i].Sizes = append([]string(nil), p.Sizes...)
		out.Products[i].Options = append([]string(nil), p.Options...)
		out.Products[i].EquipmentIDs = append([]string(nil), p.EquipmentIDs...)
	}
	for i, e := range out.CostEntries.Labor {
		if e.HourlyRateOverride != nil {
			v := *e.HourlyRateOverride
			out.CostEntries.Labor[i].HourlyRateOverride = &v
		}
	}
	for i, e := range out.CostEntries.EquipmentAllocations {
		if e.UsageHours != nil {
			v := *e.UsageHours
			out.CostEntries.EquipmentAllocations[i].UsageHours = &v
		}
	}

	return out
}
