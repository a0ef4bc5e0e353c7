package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/takehiro-dev/costapp/internal/dataset"
)

var errProductNameRequired = errors.New("商品名は必須です")

type productListItem struct {
	Product        dataset.Product
	CategoryPath   string
	EquipmentNames string
}

type productsViewData struct {
	baseViewData
	Categories dataset.Categories
	Equipments []dataset.Equipment
	Products   []productListItem
}

func (s *server) handleProductsForm(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()

	items := make([]productListItem, 0, len(snap.Products))
	for _, p := range snap.Products {
		items = append(items, productListItem{
			Product:        p,
			CategoryPath:   snap.CategoryPath(p),
			EquipmentNames: equipmentNames(&snap, p.EquipmentIDs),
		})
	}

	s.renderTemplate(w, "products.html", productsViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Categories: snap.Categories,
		Equipments: snap.Equipments,
		Products:   items,
	})
}

func equipmentNames(d *dataset.Dataset, ids []string) string {
	var names []string
	for _, id := range ids {
		if e, ok := d.FindEquipment(id); ok {
			names = append(names, e.Name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}

func (s *server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	product, validationErr := parseProductForm(r)
	if validationErr != nil {
		http.Redirect(w, r, "/products?error="+queryMessage(validationErr.Error()), http.StatusSeeOther)
		return
	}

	created, err := s.store.AddProduct(product)
	if err != nil {
		s.log.Error().Err(err).Msg("create product")
		http.Error(w, "failed to create product", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/costs?product="+created.ID+"&success="+queryMessage("商品を登録しました。原価明細を入力できます"), http.StatusSeeOther)
}

func parseProductForm(r *http.Request) (dataset.Product, error) {
	p := dataset.Product{
		Name:             strings.TrimSpace(r.FormValue("name")),
		CategoryLargeID:  r.FormValue("category_large_id"),
		CategoryMediumID: r.FormValue("category_medium_id"),
		CategorySmallID:  r.FormValue("category_small_id"),
		Sizes:            splitList(r.FormValue("sizes")),
		Options:          splitList(r.FormValue("options")),
		RegisteredAt:     strings.TrimSpace(r.FormValue("registered_at")),
		EquipmentIDs:     r.Form["equipment_ids"],
	}

	if p.Name == "" {
		return p, errProductNameRequired
	}
	if p.RegisteredAt == "" {
		p.RegisteredAt = time.Now().Format("2006-01-02")
	}

	var err error
	if p.BaseManHours, err = parseNonNegativeFloat(r.FormValue("base_man_hours"), "基準工数"); err != nil {
		return p, err
	}
	if p.DefaultElectricityCost, err = parseNonNegativeFloat(r.FormValue("default_electricity_cost"), "電気代基準値"); err != nil {
		return p, err
	}
	if p.ProductionLotSize, err = parseNonNegativeInt(r.FormValue("production_lot_size"), "生産ロットサイズ"); err != nil {
		return p, err
	}
	if p.ExpectedProduction.Quantity, err = parseNonNegativeFloat(r.FormValue("expected_quantity"), "想定生産数"); err != nil {
		return p, err
	}
	if p.ExpectedProduction.PeriodYears, err = parseNonNegativeFloat(r.FormValue("expected_period_years"), "想定生産期間"); err != nil {
		return p, err
	}

	return p, nil
}
