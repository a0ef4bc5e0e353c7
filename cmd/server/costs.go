package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/takehiro-dev/costapp/internal/costing"
	"github.com/takehiro-dev/costapp/internal/dataset"
)

type costEntryLine struct {
	Detail   string
	Amount   float64
	Currency string
}

type selectedProductView struct {
	Product      dataset.Product
	CategoryPath string
	Costs        costing.Breakdown

	MaterialLines    []costEntryLine
	PackagingLines   []costEntryLine
	LaborLines       []costEntryLine
	OutsourcingLines []costEntryLine
	DevelopmentLines []costEntryLine
	EquipmentLines   []costEntryLine
	LogisticsLines   []costEntryLine
	ElectricityLines []costEntryLine
}

type costsViewData struct {
	baseViewData
	Products        []dataset.Product
	Selected        *selectedProductView
	Materials       []dataset.Material
	PackagingItems  []dataset.PackagingItem
	LaborRoles      []dataset.LaborRole
	Equipments      []dataset.Equipment
	ShippingMethods []dataset.ShippingMethod
	CurrencyOptions []string
}

func (s *server) handleCostsForm(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()

	view := costsViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Products:        snap.Products,
		Materials:       snap.Materials,
		PackagingItems:  snap.PackagingItems,
		LaborRoles:      snap.LaborRoles,
		Equipments:      snap.Equipments,
		ShippingMethods: snap.ShippingMethods,
		CurrencyOptions: currencyOptions,
	}

	if productID := r.URL.Query().Get("product"); productID != "" {
		if product, ok := snap.FindProduct(productID); ok {
			view.Selected = buildSelectedProductView(&snap, product)
		}
	}

	s.renderTemplate(w, "costs.html", view)
}

func buildSelectedProductView(d *dataset.Dataset, product dataset.Product) *selectedProductView {
	v := &selectedProductView{
		Product:      product,
		CategoryPath: d.CategoryPath(product),
		Costs:        costing.UnitCosts(product.ID, d),
	}

	for _, e := range d.MaterialEntriesFor(product.ID) {
		name := "-"
		if m, ok := d.FindMaterial(e.MaterialID); ok {
			name = m.Name
		}
		v.MaterialLines = append(v.MaterialLines, costEntryLine{
			Detail:   fmt.Sprintf("%s / 使用率 %g%%", name, e.UsageRatio),
			Amount:   e.CostPerUnit,
			Currency: e.Currency,
		})
	}
	for _, e := range d.PackagingEntriesFor(product.ID) {
		name := "-"
		if item, ok := d.FindPackagingItem(e.PackagingItemID); ok {
			name = item.Name
		}
		v.PackagingLines = append(v.PackagingLines, costEntryLine{
			Detail:   fmt.Sprintf("%s × %g", name, e.Quantity),
			Amount:   e.Quantity * e.CostPerUnit,
			Currency: e.Currency,
		})
	}
	for _, e := range d.LaborEntriesFor(product.ID) {
		roleName := "-"
		rate := 0.0
		currency := "JPY"
		if role, ok := d.FindLaborRole(e.LaborRoleID); ok {
			roleName = role.Name
			rate = role.HourlyRate
			currency = role.Currency
		}
		if e.HourlyRateOverride != nil {
			rate = *e.HourlyRateOverride
		}
		v.LaborLines = append(v.LaborLines, costEntryLine{
			Detail:   fmt.Sprintf("%s / %gh × %g人", roleName, e.Hours, e.PeopleCount),
			Amount:   rate * e.Hours * e.PeopleCount,
			Currency: currency,
		})
	}
	for _, e := range d.OutsourcingEntriesFor(product.ID) {
		detail := e.Note
		if detail == "" {
			detail = "-"
		}
		v.OutsourcingLines = append(v.OutsourcingLines, costEntryLine{
			Detail:   detail,
			Amount:   e.CostPerUnit,
			Currency: e.Currency,
		})
	}
	for _, e := range d.DevelopmentEntriesFor(product.ID) {
		title := e.Title
		if title == "" {
			title = "開発コスト"
		}
		total := e.PrototypeLaborCost + e.PrototypeMaterialCost + e.ToolingCost
		v.DevelopmentLines = append(v.DevelopmentLines, costEntryLine{
			Detail:   fmt.Sprintf("%s / %g年償却", title, e.AmortizationYears),
			Amount:   total,
			Currency: "JPY",
		})
	}
	allocations := d.EquipmentAllocationsFor(product.ID)
	hoursTotal := 0.0
	for _, e := range allocations {
		if e.UsageHours != nil {
			hoursTotal += *e.UsageHours
		}
	}
	for _, e := range allocations {
		name := "-"
		currency := "JPY"
		annualCost := 0.0
		if equipment, ok := d.FindEquipment(e.EquipmentID); ok {
			name = equipment.Name
			currency = equipment.Currency
			years := equipment.AmortizationYears
			if years < 1 {
				years = 1
			}
			annualCost = equipment.AcquisitionCost / years
		}
		ratio := e.AllocationRatio
		basis := fmt.Sprintf("配賦率 %g", e.AllocationRatio)
		if e.UsageHours != nil {
			divisor := hoursTotal
			if divisor < 1 {
				divisor = 1
			}
			ratio = *e.UsageHours / divisor
			basis = fmt.Sprintf("使用時間 %gh", *e.UsageHours)
		}
		quantity := e.AnnualQuantity
		if quantity < 1 {
			quantity = 1
		}
		v.EquipmentLines = append(v.EquipmentLines, costEntryLine{
			Detail:   fmt.Sprintf("%s / %s", name, basis),
			Amount:   annualCost * ratio / quantity,
			Currency: currency,
		})
	}
	for _, e := range d.LogisticsEntriesFor(product.ID) {
		name := "未設定"
		if m, ok := d.FindShippingMethod(e.ShippingMethodID); ok {
			name = m.Name
		}
		v.LogisticsLines = append(v.LogisticsLines, costEntryLine{
			Detail:   name,
			Amount:   e.CostPerUnit,
			Currency: e.Currency,
		})
	}
	for _, e := range d.ElectricityEntriesFor(product.ID) {
		v.ElectricityLines = append(v.ElectricityLines, costEntryLine{
			Detail:   "基準値",
			Amount:   e.CostPerUnit,
			Currency: e.Currency,
		})
	}

	return v
}

func costsRedirect(w http.ResponseWriter, r *http.Request, productID, key, msg string) {
	http.Redirect(w, r, "/costs?product="+productID+"&"+key+"="+queryMessage(msg), http.StatusSeeOther)
}

// requireProduct pulls the product id out of the form and checks it exists.
func (s *server) requireProduct(w http.ResponseWriter, r *http.Request) (string, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return "", false
	}
	productID := r.FormValue("product_id")
	if productID == "" {
		http.Redirect(w, r, "/costs?error="+queryMessage("商品を選択してください"), http.StatusSeeOther)
		return "", false
	}
	snap := s.store.Snapshot()
	if _, ok := snap.FindProduct(productID); !ok {
		http.Redirect(w, r, "/costs?error="+queryMessage("商品が見つかりません"), http.StatusSeeOther)
		return "", false
	}
	return productID, true
}

func (s *server) handleMaterialEntryCreate(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.requireProduct(w, r)
	if !ok {
		return
	}

	materialID := r.FormValue("material_id")
	if materialID == "" {
		costsRedirect(w, r, productID, "error", "材料を選択してください")
		return
	}
	usageRatio, err := parsePercent(r.FormValue("usage_ratio"), "使用率")
	if err != nil {
		costsRedirect(w, r, productID, "error", err.Error())
		return
	}

	_, err = s.store.AddMaterialCostEntry(dataset.MaterialCostEntry{
		ProductID:   productID,
		MaterialID:  materialID,
		UsageRatio:  usageRatio,
		Description: strings.TrimSpace(r.FormValue("description")),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create material entry")
		http.Error(w, "failed to create entry", http.StatusInternalServerError)
		return
	}

	costsRedirect(w, r, productID, "success", "材料明細を追加しました")
}

func (s *server) handlePackagingEntryCreate(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.requireProduct(w, r)
	if !ok {
		return
	}

	itemID := r.FormValue("packaging_item_id")
	if itemID == "" {
		costsRedirect(w, r, productID, "error", "梱包材を選択してください")
		return
	}
	quantity, err := parseNonNegativeFloat(r.FormValue("quantity"), "数量")
	if err != nil {
		costsRedirect(w, r, productID, "error", err.Error())
		return
	}

	_, err = s.store.AddPackagingCostEntry(dataset.PackagingCostEntry{
		ProductID:       productID,
		PackagingItemID: itemID,
		Quantity:        quantity,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create packaging entry")
		http.Error(w, "failed to create entry", http.StatusInternalServerError)
		return
	}

	costsRedirect(w, r, productID, "success", "梱包明細を追加しました")
}

func (s *server) handleLaborEntryCreate(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.requireProduct(w, r)
	if !ok {
		return
	}

	roleID := r.FormValue("labor_role_id")
	if roleID == "" {
		costsRedirect(w, r, productID, "error", "作業カテゴリを選択してください")
		return
	}
	hours, err := parseNonNegativeFloat(r.FormValue("hours"), "工数")
	if err != nil {
		costsRedirect(w, r, productID, "error", err.Error())
		return
	}
	peopleCount, err := parsePositiveFloat(r.FormValue("people_count"), "人数")
	if err != nil {
		costsRedirect(w, r, productID, "error", err.Error())
		return
	}
	override, err := parseOptionalFloat(r.FormValue("hourly_rate_override"), "時給上書き")
	if err != nil {
		costsRedirect(w, r, productID, "error", err.Error())
		return
	}

	_, err = s.store.AddLaborCostEntry(dataset.LaborCostEntry{
		ProductID:          productID,
		LaborRoleID:        roleID,
		Hours:              hours,
		PeopleCount:        peopleCount,
		HourlyRateOverride: override,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create labor entry")
		http.Error(w, "failed to create entry", http.StatusInternalServerError)
		return
	}

	costsRedirect(w, r, productID, "success", "人件費明細を追加しました")
}

func (s *server) handleOutsourcingEntryCreate(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.requireProduct(w, r)
	if !ok {
		return
	}

	costPerUnit, err := parseNonNegativeFloat(r.FormValue("cost_per_unit"), "単価")
	if err != nil {
		costsRedirect(w, r, productID, "error", err.Error())
		return
	}

	_, err = s.store.AddOutsourcingCostEntry(dataset.OutsourcingCostEntry{
		ProductID:   productID,
		CostPerUnit: costPerUnit,
		Currency:    formCurrency(r.FormValue("currency")),
		Note:        strings.TrimSpace(r.FormValue("note")),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create outsourcing entry")
		http.Error(w, "failed to create entry", http.StatusInternalServerError)
		return
	}

	costsRedirect(w, r, productID, "success", "外注明細を追加しました")
}

func (s *server) handleDevelopmentEntryCreate(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.requireProduct(w, r)
	if !ok {
		return
	}

	entry := dataset.DevelopmentCostEntry{
		ProductID: productID,
		Title:     strings.TrimSpace(r.FormValue("title")),
	}

	var err error
	if entry.PrototypeLaborCost, err = parseNonNegativeFloat(r.FormValue("prototype_labor_cost"), "試作人件費"); err != nil {
		costsRedirect(w, r, productID, "error", err.Error())
		return
	}
	if entry.PrototypeMaterialCost, err = parseNonNegativeFloat(r.FormValue("prototype_material_cost"), "試作材料費"); err != nil {
		costsRedirect(w, r, productID, "error", err.Error())
		return
	}
	if entry.ToolingCost, err = parseNonNegativeFloat(r.FormValue("tooling_cost"), "道具・型費"); err != nil {
		costsRedirect(w, r, productID, "error", err.Error())
		return
	}
	if entry.AmortizationYears, err = parsePositiveFloat(r.FormValue("amortization_years"), "償却年数"); err != nil {
		costsRedirect(w, r, productID, "error", err.Error())
		return
	}

	if _, err = s.store.AddDevelopmentCostEntry(entry); err != nil {
		s.log.Error().Err(err).Msg("create development entry")
		http.Error(w, "failed to create entry", http.StatusInternalServerError)
		return
	}

	costsRedirect(w, r, productID, "success", "開発コストを追加しました")
}

func (s *server) handleEquipmentEntryCreate(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.requireProduct(w, r)
	if !ok {
		return
	}

	equipmentID := r.FormValue("equipment_id")
	if equipmentID == "" {
		costsRedirect(w, r, productID, "error", "設備を選択してください")
		return
	}

	allocationRatio, err := parseRatio(r.FormValue("allocation_ratio"), "配賦率")
	if err != nil {
		costsRedirect(w, r, productID, "error", err.Error())
		return
	}
	annualQuantity, err := parseNonNegativeFloat(r.FormValue("annual_quantity"), "年間生産数")
	if err != nil {
		costsRedirect(w, r, productID, "error", err.Error())
		return
	}
	usageHours, err := parseOptionalFloat(r.FormValue("usage_hours"), "使用時間")
	if err != nil {
		costsRedirect(w, r, productID, "error", err.Error())
		return
	}

	_, err = s.store.AddEquipmentAllocation(dataset.EquipmentAllocationEntry{
		ProductID:       productID,
		EquipmentID:     equipmentID,
		AllocationRatio: allocationRatio,
		AnnualQuantity:  annualQuantity,
		UsageHours:      usageHours,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create equipment allocation")
		http.Error(w, "failed to create entry", http.StatusInternalServerError)
		return
	}

	costsRedirect(w, r, productID, "success", "設備配賦を追加しました")
}

func (s *server) handleLogisticsEntryCreate(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.requireProduct(w, r)
	if !ok {
		return
	}

	methodID := r.FormValue("shipping_method_id")
	if methodID == "" {
		costsRedirect(w, r, productID, "error", "配送方法を選択してください")
		return
	}

	_, err := s.store.AddLogisticsCostEntry(dataset.LogisticsCostEntry{
		ProductID:        productID,
		ShippingMethodID: methodID,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create logistics entry")
		http.Error(w, "failed to create entry", http.StatusInternalServerError)
		return
	}

	costsRedirect(w, r, productID, "success", "物流明細を追加しました")
}

func (s *server) handleElectricityEntryCreate(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.requireProduct(w, r)
	if !ok {
		return
	}

	// Blank input falls back to the product's registered default.
	raw := strings.TrimSpace(r.FormValue("cost_per_unit"))
	var costPerUnit float64
	if raw == "" {
		snap := s.store.Snapshot()
		if product, ok := snap.FindProduct(productID); ok {
			costPerUnit = product.DefaultElectricityCost
		}
	} else {
		var err error
		if costPerUnit, err = parseNonNegativeFloat(raw, "電気代"); err != nil {
			costsRedirect(w, r, productID, "error", err.Error())
			return
		}
	}

	_, err := s.store.AddElectricityCostEntry(dataset.ElectricityCostEntry{
		ProductID:   productID,
		CostPerUnit: costPerUnit,
		Currency:    formCurrency(r.FormValue("currency")),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create electricity entry")
		http.Error(w, "failed to create entry", http.StatusInternalServerError)
		return
	}

	costsRedirect(w, r, productID, "success", "電気代明細を追加しました")
}
