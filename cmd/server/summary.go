package main

import (
	"net/http"

	"github.com/takehiro-dev/costapp/internal/costing"
	"github.com/takehiro-dev/costapp/internal/dataset"
)

type productCostRow struct {
	Product      dataset.Product
	CategoryPath string
	Costs        costing.Breakdown
}

type materialUsageRow struct {
	ProductName string
	UsageRatio  float64
	CostShare   float64
	LotSize     int
}

type materialUsageGroup struct {
	Material   dataset.Material
	TotalRatio float64
	Rows       []materialUsageRow
}

type equipmentUsageRow struct {
	ProductName string
	Ratio       float64
	UnitCost    float64
}

type equipmentUsageGroup struct {
	Equipment  dataset.Equipment
	AnnualCost float64
	Rows       []equipmentUsageRow
}

type summaryViewData struct {
	baseViewData
	ProductRows     []productCostRow
	MaterialGroups  []materialUsageGroup
	EquipmentGroups []equipmentUsageGroup
}

func (s *server) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()

	view := summaryViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		ProductRows:     buildProductCostRows(&snap),
		MaterialGroups:  buildMaterialUsageGroups(&snap),
		EquipmentGroups: buildEquipmentUsageGroups(&snap),
	}

	s.renderTemplate(w, "summary.html", view)
}

func buildProductCostRows(d *dataset.Dataset) []productCostRow {
	rows := make([]productCostRow, 0, len(d.Products))
	for _, p := range d.Products {
		rows = append(rows, productCostRow{
			Product:      p,
			CategoryPath: d.CategoryPath(p),
			Costs:        costing.UnitCosts(p.ID, d),
		})
	}
	return rows
}

// buildMaterialUsageGroups inverts the material cost entries: for each
// material, which products consume it and how much of a purchase lot each
// one takes. Entries pointing at deleted materials are skipped.
func buildMaterialUsageGroups(d *dataset.Dataset) []materialUsageGroup {
	byMaterial := make(map[string]*materialUsageGroup)
	order := make([]string, 0)

	for _, e := range d.CostEntries.Materials {
		m, ok := d.FindMaterial(e.MaterialID)
		if !ok {
			continue
		}
		group, seen := byMaterial[m.ID]
		if !seen {
			group = &materialUsageGroup{Material: m}
			byMaterial[m.ID] = group
			order = append(order, m.ID)
		}

		productName := "-"
		lotSize := 0
		if p, found := d.FindProduct(e.ProductID); found {
			productName = p.Name
			lotSize = p.ProductionLotSize
		}
		group.TotalRatio += e.UsageRatio
		group.Rows = append(group.Rows, materialUsageRow{
			ProductName: productName,
			UsageRatio:  e.UsageRatio,
			CostShare:   e.CostPerUnit,
			LotSize:     lotSize,
		})
	}

	groups := make([]materialUsageGroup, 0, len(order))
	for _, id := range order {
		groups = append(groups, *byMaterial[id])
	}
	return groups
}

// buildEquipmentUsageGroups shows, per piece of equipment, every product it
// is allocated to. The displayed ratio follows usage hours proportionally
// when the group's entries record hours, otherwise the stored ratio.
func buildEquipmentUsageGroups(d *dataset.Dataset) []equipmentUsageGroup {
	type pending struct {
		group   *equipmentUsageGroup
		entries []dataset.EquipmentAllocationEntry
	}
	byEquipment := make(map[string]*pending)
	order := make([]string, 0)

	for _, e := range d.CostEntries.EquipmentAllocations {
		eq, ok := d.FindEquipment(e.EquipmentID)
		if !ok {
			continue
		}
		p, seen := byEquipment[eq.ID]
		if !seen {
			years := eq.AmortizationYears
			if years < 1 {
				years = 1
			}
			p = &pending{group: &equipmentUsageGroup{
				Equipment:  eq,
				AnnualCost: eq.AcquisitionCost / years,
			}}
			byEquipment[eq.ID] = p
			order = append(order, eq.ID)
		}
		p.entries = append(p.entries, e)
	}

	groups := make([]equipmentUsageGroup, 0, len(order))
	for _, id := range order {
		p := byEquipment[id]

		hoursTotal := 0.0
		for _, e := range p.entries {
			if e.UsageHours != nil {
				hoursTotal += *e.UsageHours
			}
		}

		for _, e := range p.entries {
			productName := "-"
			if product, found := d.FindProduct(e.ProductID); found {
				productName = product.Name
			}

			ratio := e.AllocationRatio
			if e.UsageHours != nil && hoursTotal > 0 {
				ratio = *e.UsageHours / hoursTotal
			}

			quantity := e.AnnualQuantity
			if quantity < 1 {
				quantity = 1
			}
			p.group.Rows = append(p.group.Rows, equipmentUsageRow{
				ProductName: productName,
				Ratio:       ratio,
				UnitCost:    p.group.AnnualCost * e.AllocationRatio / quantity,
			})
		}
		groups = append(groups, *p.group)
	}
	return groups
}
