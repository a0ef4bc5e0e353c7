// Package seed builds the demo dataset a first-time user can load to explore
// the tool before registering their own master data.
package seed

import (
	"fmt"

	"github.com/takehiro-dev/costapp/internal/dataset"
	"github.com/takehiro-dev/costapp/internal/store"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run loads the sample dataset into an empty store. A store that already
// holds any master data or products is left untouched, so repeated runs are
// idempotent.
func Run(st *store.Store) (Stats, error) {
	snap := st.Snapshot()
	if !isEmpty(&snap) {
		return Stats{}, nil
	}

	sample := Sample()
	if err := st.ReplaceAll(sample); err != nil {
		return Stats{}, fmt.Errorf("load sample dataset: %w", err)
	}
	return Stats{Inserts: countRecords(&sample)}, nil
}

func isEmpty(d *dataset.Dataset) bool {
	return countRecords(d) == 0
}

func countRecords(d *dataset.Dataset) int {
	return len(d.Categories.Large) + len(d.Categories.Medium) + len(d.Categories.Small) +
		len(d.Materials) + len(d.PackagingItems) + len(d.LaborRoles) +
		len(d.Equipments) + len(d.ShippingMethods) + len(d.Products) +
		len(d.CostEntries.Materials) + len(d.CostEntries.Packaging) +
		len(d.CostEntries.Labor) + len(d.CostEntries.Outsourcing) +
		len(d.CostEntries.Development) + len(d.CostEntries.EquipmentAllocations) +
		len(d.CostEntries.Logistics) + len(d.CostEntries.Electricity)
}

// Sample returns the demo dataset: a small leather-goods maker with one
// fully-costed product and one just-registered product.
func Sample() dataset.Dataset {
	largeID := dataset.NewID()
	mediumID := dataset.NewID()
	smallID := dataset.NewID()

	leatherID := dataset.NewID()
	canvasID := dataset.NewID()
	boxID := dataset.NewID()
	bagID := dataset.NewID()
	cuttingRoleID := dataset.NewID()
	sewingRoleID := dataset.NewID()
	machineID := dataset.NewID()
	cutterID := dataset.NewID()
	parcelID := dataset.NewID()
	mailID := dataset.NewID()

	toteID := dataset.NewID()
	pouchID := dataset.NewID()

	toteHoursMachine := 2.0
	toteHoursCutter := 6.0

	return dataset.Dataset{
		Categories: dataset.Categories{
			Large:  []dataset.CategoryLarge{{ID: largeID, Name: "アパレル", Description: "衣料・服飾雑貨"}},
			Medium: []dataset.CategoryMedium{{ID: mediumID, Name: "バッグ", Description: "", LargeID: largeID}},
			Small:  []dataset.CategorySmall{{ID: smallID, Name: "トートバッグ", Description: "", MediumID: mediumID}},
		},
		Materials: []dataset.Material{
			{ID: leatherID, Name: "牛革ヌメ (半裁)", Unit: "枚", SizeDescription: "約200ds", Currency: "JPY", UnitCost: 12000, Supplier: "栃木レザー", Note: "定番在庫"},
			{ID: canvasID, Name: "8号帆布", Unit: "m", SizeDescription: "92cm幅", Currency: "JPY", UnitCost: 1500, Supplier: "", Note: ""},
		},
		PackagingItems: []dataset.PackagingItem{
			{ID: boxID, Name: "化粧箱", Unit: "個", SizeDescription: "F3サイズ", Currency: "JPY", UnitCost: 120, Note: ""},
			{ID: bagID, Name: "OPP袋", Unit: "枚", SizeDescription: "A4", Currency: "JPY", UnitCost: 15, Note: ""},
		},
		LaborRoles: []dataset.LaborRole{
			{ID: cuttingRoleID, Name: "裁断", HourlyRate: 1800, Currency: "JPY", Note: ""},
			{ID: sewingRoleID, Name: "縫製", HourlyRate: 2000, Currency: "JPY", Note: ""},
		},
		Equipments: []dataset.Equipment{
			{ID: machineID, Name: "工業用ミシン", AcquisitionCost: 450000, Currency: "JPY", AmortizationYears: 5, Note: ""},
			{ID: cutterID, Name: "レーザー裁断機", AcquisitionCost: 1200000, Currency: "JPY", AmortizationYears: 7, Note: ""},
		},
		ShippingMethods: []dataset.ShippingMethod{
			{ID: parcelID, Name: "宅配便60サイズ", Description: "箱入り発送", UnitCost: 700, Currency: "JPY", Note: ""},
			{ID: mailID, Name: "ネコポス", Description: "薄物のみ", UnitCost: 250, Currency: "JPY", Note: ""},
		},
		Products: []dataset.Product{
			{
				ID:                     toteID,
				Name:                   "レザートートバッグ",
				CategoryLargeID:        largeID,
				CategoryMediumID:       mediumID,
				CategorySmallID:        smallID,
				Sizes:                  []string{"S", "M"},
				Options:                []string{"名入れ"},
				BaseManHours:           2.5,
				DefaultElectricityCost: 12,
				RegisteredAt:           "2025-04-01",
				ProductionLotSize:      50,
				ExpectedProduction:     dataset.ExpectedProduction{Quantity: 1000, PeriodYears: 2},
				EquipmentIDs:           []string{machineID, cutterID},
			},
			{
				ID:                 pouchID,
				Name:               "帆布ポーチ",
				CategoryLargeID:    largeID,
				CategoryMediumID:   mediumID,
				Sizes:              []string{"F"},
				Options:            []string{},
				BaseManHours:       0.8,
				RegisteredAt:       "2025-05-12",
				ProductionLotSize:  100,
				ExpectedProduction: dataset.ExpectedProduction{Quantity: 2000, PeriodYears: 2},
				EquipmentIDs:       []string{machineID},
			},
		},
		CostEntries: dataset.CostEntries{
			Materials: []dataset.MaterialCostEntry{
				// costPerUnit = unitCost x usageRatio/100, fixed at entry time.
				{ID: dataset.NewID(), ProductID: toteID, MaterialID: leatherID, UsageRatio: 2, CostPerUnit: 240, Currency: "JPY", Description: "本体・持ち手"},
				{ID: dataset.NewID(), ProductID: toteID, MaterialID: canvasID, UsageRatio: 10, CostPerUnit: 150, Currency: "JPY", Description: "内装"},
			},
			Packaging: []dataset.PackagingCostEntry{
				{ID: dataset.NewID(), ProductID: toteID, PackagingItemID: boxID, Quantity: 1, CostPerUnit: 120, Currency: "JPY"},
				{ID: dataset.NewID(), ProductID: toteID, PackagingItemID: bagID, Quantity: 1, CostPerUnit: 15, Currency: "JPY"},
			},
			Labor: []dataset.LaborCostEntry{
				{ID: dataset.NewID(), ProductID: toteID, LaborRoleID: cuttingRoleID, Hours: 0.5, PeopleCount: 1},
				{ID: dataset.NewID(), ProductID: toteID, LaborRoleID: sewingRoleID, Hours: 1.5, PeopleCount: 1},
			},
			Outsourcing: []dataset.OutsourcingCostEntry{
				{ID: dataset.NewID(), ProductID: toteID, CostPerUnit: 200, Currency: "JPY", Note: "ロゴ刻印加工"},
			},
			Development: []dataset.DevelopmentCostEntry{
				{ID: dataset.NewID(), ProductID: toteID, Title: "初回試作", PrototypeLaborCost: 150000, PrototypeMaterialCost: 60000, ToolingCost: 40000, AmortizationYears: 2},
			},
			EquipmentAllocations: []dataset.EquipmentAllocationEntry{
				{ID: dataset.NewID(), ProductID: toteID, EquipmentID: machineID, AllocationRatio: 0.5, AnnualQuantity: 500, UsageHours: &toteHoursMachine},
				{ID: dataset.NewID(), ProductID: toteID, EquipmentID: cutterID, AllocationRatio: 0.5, AnnualQuantity: 500, UsageHours: &toteHoursCutter},
			},
			Logistics: []dataset.LogisticsCostEntry{
				{ID: dataset.NewID(), ProductID: toteID, ShippingMethodID: parcelID, CostPerUnit: 700, Currency: "JPY"},
			},
			Electricity: []dataset.ElectricityCostEntry{
				{ID: dataset.NewID(), ProductID: toteID, CostPerUnit: 12, Currency: "JPY"},
			},
		},
	}
}
