// Package costing derives per-unit cost breakdowns from a dataset snapshot.
// Everything here is pure arithmetic: no I/O, no state, no errors. Bad input
// degrades to zero contributions instead of failing, because entries are
// typed in incrementally and master data can lag behind them.
package costing

import (
	"math"

	"github.com/takehiro-dev/costapp/internal/dataset"
)

// Breakdown is the per-unit cost of one product, split by category.
// Sums are currency-naive: each contributing entry keeps its own currency
// tag and figures are added as plain numbers. This tool assumes a
// single-currency deployment; converting before summation would need a
// currency-conversion collaborator that deliberately does not exist here.
type Breakdown struct {
	Material    float64
	Packaging   float64
	Labor       float64
	Outsourcing float64
	Development float64
	Equipment   float64
	Logistics   float64
	Electricity float64
	Total       float64
}

// UnitCosts computes the per-unit cost breakdown for one product. Entries
// referencing missing master records contribute zero without affecting the
// rest of the aggregation.
func UnitCosts(productID string, d *dataset.Dataset) Breakdown {
	b := Breakdown{
		Material:    materialCost(productID, d),
		Packaging:   packagingCost(productID, d),
		Labor:       laborCost(productID, d),
		Outsourcing: outsourcingCost(productID, d),
		Development: developmentCost(productID, d),
		Equipment:   equipmentCost(productID, d),
		Logistics:   logisticsCost(productID, d),
		Electricity: electricityCost(productID, d),
	}
	b.Total = b.Material + b.Packaging + b.Labor + b.Outsourcing +
		b.Development + b.Equipment + b.Logistics + b.Electricity
	return b
}

func materialCost(productID string, d *dataset.Dataset) float64 {
	sum := 0.0
	for _, e := range d.MaterialEntriesFor(productID) {
		if _, ok := d.FindMaterial(e.MaterialID); !ok {
			continue
		}
		// The stored per-unit cost was fixed at entry creation; it is
		// summed as-is even if the master record changed since.
		sum += nonNegative(e.CostPerUnit)
	}
	return sum
}

func packagingCost(productID string, d *dataset.Dataset) float64 {
	sum := 0.0
	for _, e := range d.PackagingEntriesFor(productID) {
		sum += nonNegative(e.Quantity) * nonNegative(e.CostPerUnit)
	}
	return sum
}

func laborCost(productID string, d *dataset.Dataset) float64 {
	sum := 0.0
	for _, e := range d.LaborEntriesFor(productID) {
		rate := 0.0
		if role, ok := d.FindLaborRole(e.LaborRoleID); ok {
			rate = nonNegative(role.HourlyRate)
		}
		if e.HourlyRateOverride != nil {
			rate = nonNegative(*e.HourlyRateOverride)
		}
		sum += rate * nonNegative(e.Hours) * nonNegative(e.PeopleCount)
	}
	return sum
}

func outsourcingCost(productID string, d *dataset.Dataset) float64 {
	sum := 0.0
	for _, e := range d.OutsourcingEntriesFor(productID) {
		sum += nonNegative(e.CostPerUnit)
	}
	return sum
}

func developmentCost(productID string, d *dataset.Dataset) float64 {
	// Amortization spreads the lump sum evenly across the product's total
	// expected lifetime output, not the current production lot.
	expectedQty := 1.0
	if p, ok := d.FindProduct(productID); ok {
		expectedQty = atLeastOne(p.ExpectedProduction.Quantity)
	}

	sum := 0.0
	for _, e := range d.DevelopmentEntriesFor(productID) {
		total := nonNegative(e.PrototypeLaborCost) +
			nonNegative(e.PrototypeMaterialCost) +
			nonNegative(e.ToolingCost)
		perYear := total / atLeastOne(e.AmortizationYears)
		sum += perYear / expectedQty
	}
	return sum
}

func equipmentCost(productID string, d *dataset.Dataset) float64 {
	entries := d.EquipmentAllocationsFor(productID)

	// Hours total only counts entries that declare usage hours. Entries
	// with hours allocate proportionally against that total; entries
	// without fall back to their stored ratio.
	hoursTotal := 0.0
	for _, e := range entries {
		if e.UsageHours != nil {
			hoursTotal += nonNegative(*e.UsageHours)
		}
	}

	sum := 0.0
	for _, e := range entries {
		equipment, ok := d.FindEquipment(e.EquipmentID)
		if !ok {
			continue
		}
		annualCost := nonNegative(equipment.AcquisitionCost) / atLeastOne(equipment.AmortizationYears)

		ratio := nonNegative(e.AllocationRatio)
		if e.UsageHours != nil {
			ratio = nonNegative(*e.UsageHours) / atLeastOne(hoursTotal)
		}

		sum += annualCost * ratio / atLeastOne(e.AnnualQuantity)
	}
	return sum
}

func logisticsCost(productID string, d *dataset.Dataset) float64 {
	sum := 0.0
	for _, e := range d.LogisticsEntriesFor(productID) {
		sum += nonNegative(e.CostPerUnit)
	}
	return sum
}

func electricityCost(productID string, d *dataset.Dataset) float64 {
	sum := 0.0
	for _, e := range d.ElectricityEntriesFor(productID) {
		sum += nonNegative(e.CostPerUnit)
	}
	return sum
}

// nonNegative coerces NaN and negative inputs to 0 before arithmetic.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// atLeastOne floors denominators at 1 so amortization and allocation never
// divide by zero or flip sign.
func atLeastOne(v float64) float64 {
	if math.IsNaN(v) || v < 1 {
		return 1
	}
	return v
}
