package main

import (
	"net/http"
	"strings"

	"github.com/takehiro-dev/costapp/internal/dataset"
)

type masterViewData struct {
	baseViewData
	Categories      dataset.Categories
	Materials       []dataset.Material
	PackagingItems  []dataset.PackagingItem
	LaborRoles      []dataset.LaborRole
	Equipments      []dataset.Equipment
	ShippingMethods []dataset.ShippingMethod
	CurrencyOptions []string
}

func (s *server) handleMasterForm(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()

	s.renderTemplate(w, "master.html", masterViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Categories:      snap.Categories,
		Materials:       snap.Materials,
		PackagingItems:  snap.PackagingItems,
		LaborRoles:      snap.LaborRoles,
		Equipments:      snap.Equipments,
		ShippingMethods: snap.ShippingMethods,
		CurrencyOptions: currencyOptions,
	})
}

func (s *server) handleLargeCategoryCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Redirect(w, r, "/master?error="+queryMessage("カテゴリ名は必須です"), http.StatusSeeOther)
		return
	}

	_, err := s.store.AddLargeCategory(dataset.CategoryLarge{
		Name:        name,
		Description: strings.TrimSpace(r.FormValue("description")),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create large category")
		http.Error(w, "failed to create category", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/master?success="+queryMessage("大カテゴリを登録しました"), http.StatusSeeOther)
}

func (s *server) handleMediumCategoryCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	largeID := r.FormValue("large_id")
	if name == "" || largeID == "" {
		http.Redirect(w, r, "/master?error="+queryMessage("カテゴリ名と大カテゴリは必須です"), http.StatusSeeOther)
		return
	}

	_, err := s.store.AddMediumCategory(dataset.CategoryMedium{
		Name:        name,
		Description: strings.TrimSpace(r.FormValue("description")),
		LargeID:     largeID,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create medium category")
		http.Error(w, "failed to create category", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/master?success="+queryMessage("中カテゴリを登録しました"), http.StatusSeeOther)
}

func (s *server) handleSmallCategoryCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	mediumID := r.FormValue("medium_id")
	if name == "" || mediumID == "" {
		http.Redirect(w, r, "/master?error="+queryMessage("カテゴリ名と中カテゴリは必須です"), http.StatusSeeOther)
		return
	}

	_, err := s.store.AddSmallCategory(dataset.CategorySmall{
		Name:        name,
		Description: strings.TrimSpace(r.FormValue("description")),
		MediumID:    mediumID,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create small category")
		http.Error(w, "failed to create category", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/master?success="+queryMessage("小カテゴリを登録しました"), http.StatusSeeOther)
}

func (s *server) handleMaterialCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Redirect(w, r, "/master?error="+queryMessage("材料名は必須です"), http.StatusSeeOther)
		return
	}

	unitCost, err := parseNonNegativeFloat(r.FormValue("unit_cost"), "単価")
	if err != nil {
		http.Redirect(w, r, "/master?error="+queryMessage(err.Error()), http.StatusSeeOther)
		return
	}

	_, err = s.store.AddMaterial(dataset.Material{
		Name:            name,
		Unit:            strings.TrimSpace(r.FormValue("unit")),
		SizeDescription: strings.TrimSpace(r.FormValue("size_description")),
		Currency:        formCurrency(r.FormValue("currency")),
		UnitCost:        unitCost,
		Supplier:        strings.TrimSpace(r.FormValue("supplier")),
		Note:            strings.TrimSpace(r.FormValue("note")),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create material")
		http.Error(w, "failed to create material", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/master?success="+queryMessage("材料を登録しました"), http.StatusSeeOther)
}

func (s *server) handlePackagingItemCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Redirect(w, r, "/master?error="+queryMessage("梱包材名は必須です"), http.StatusSeeOther)
		return
	}

	unitCost, err := parseNonNegativeFloat(r.FormValue("unit_cost"), "単価")
	if err != nil {
		http.Redirect(w, r, "/master?error="+queryMessage(err.Error()), http.StatusSeeOther)
		return
	}

	_, err = s.store.AddPackagingItem(dataset.PackagingItem{
		Name:            name,
		Unit:            strings.TrimSpace(r.FormValue("unit")),
		SizeDescription: strings.TrimSpace(r.FormValue("size_description")),
		Currency:        formCurrency(r.FormValue("currency")),
		UnitCost:        unitCost,
		Note:            strings.TrimSpace(r.FormValue("note")),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create packaging item")
		http.Error(w, "failed to create packaging item", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/master?success="+queryMessage("梱包材を登録しました"), http.StatusSeeOther)
}

func (s *server) handleLaborRoleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Redirect(w, r, "/master?error="+queryMessage("作業カテゴリ名は必須です"), http.StatusSeeOther)
		return
	}

	hourlyRate, err := parseNonNegativeFloat(r.FormValue("hourly_rate"), "時給")
	if err != nil {
		http.Redirect(w, r, "/master?error="+queryMessage(err.Error()), http.StatusSeeOther)
		return
	}

	_, err = s.store.AddLaborRole(dataset.LaborRole{
		Name:       name,
		HourlyRate: hourlyRate,
		Currency:   formCurrency(r.FormValue("currency")),
		Note:       strings.TrimSpace(r.FormValue("note")),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create labor role")
		http.Error(w, "failed to create labor role", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/master?success="+queryMessage("作業カテゴリを登録しました"), http.StatusSeeOther)
}

func (s *server) handleEquipmentCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Redirect(w, r, "/master?error="+queryMessage("設備名は必須です"), http.StatusSeeOther)
		return
	}

	acquisitionCost, err := parseNonNegativeFloat(r.FormValue("acquisition_cost"), "取得額")
	if err != nil {
		http.Redirect(w, r, "/master?error="+queryMessage(err.Error()), http.StatusSeeOther)
		return
	}

	amortizationYears, err := parsePositiveFloat(r.FormValue("amortization_years"), "償却年数")
	if err != nil {
		http.Redirect(w, r, "/master?error="+queryMessage(err.Error()), http.StatusSeeOther)
		return
	}

	_, err = s.store.AddEquipment(dataset.Equipment{
		Name:              name,
		AcquisitionCost:   acquisitionCost,
		Currency:          formCurrency(r.FormValue("currency")),
		AmortizationYears: amortizationYears,
		Note:              strings.TrimSpace(r.FormValue("note")),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create equipment")
		http.Error(w, "failed to create equipment", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/master?success="+queryMessage("設備を登録しました"), http.StatusSeeOther)
}

func (s *server) handleShippingMethodCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Redirect(w, r, "/master?error="+queryMessage("配送方法名は必須です"), http.StatusSeeOther)
		return
	}

	unitCost, err := parseNonNegativeFloat(r.FormValue("unit_cost"), "単価")
	if err != nil {
		http.Redirect(w, r, "/master?error="+queryMessage(err.Error()), http.StatusSeeOther)
		return
	}

	_, err = s.store.AddShippingMethod(dataset.ShippingMethod{
		Name:        name,
		Description: strings.TrimSpace(r.FormValue("description")),
		UnitCost:    unitCost,
		Currency:    formCurrency(r.FormValue("currency")),
		Note:        strings.TrimSpace(r.FormValue("note")),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create shipping method")
		http.Error(w, "failed to create shipping method", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/master?success="+queryMessage("配送方法を登録しました"), http.StatusSeeOther)
}
