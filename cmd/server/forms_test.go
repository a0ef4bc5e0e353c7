package main

import (
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
)

func TestParseProductForm_Success(t *testing.T) {
	form := url.Values{}
	form.Set("name", "レザートートバッグ")
	form.Set("category_large_id", "cat-l")
	form.Set("sizes", "S、M、L")
	form.Set("options", "名入れ, ギフト包装")
	form.Set("registered_at", "2026-04-01")
	form.Set("base_man_hours", "3.5")
	form.Set("default_electricity_cost", "12")
	form.Set("production_lot_size", "10")
	form.Set("expected_quantity", "300")
	form.Set("expected_period_years", "2")
	form.Add("equipment_ids", "eq-1")
	form.Add("equipment_ids", "eq-2")

	req := httptest.NewRequest("POST", "/products", nil)
	req.Form = form

	p, err := parseProductForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Name != "レザートートバッグ" || p.CategoryLargeID != "cat-l" {
		t.Fatalf("unexpected product: %+v", p)
	}
	if !reflect.DeepEqual(p.Sizes, []string{"S", "M", "L"}) {
		t.Fatalf("unexpected sizes: %+v", p.Sizes)
	}
	if !reflect.DeepEqual(p.Options, []string{"名入れ", "ギフト包装"}) {
		t.Fatalf("unexpected options: %+v", p.Options)
	}
	if len(p.EquipmentIDs) != 2 {
		t.Fatalf("unexpected equipment ids: %+v", p.EquipmentIDs)
	}
	if p.ExpectedProduction.Quantity != 300 || p.ExpectedProduction.PeriodYears != 2 {
		t.Fatalf("unexpected expected production: %+v", p.ExpectedProduction)
	}
}

func TestParseProductForm_NameRequired(t *testing.T) {
	form := url.Values{}
	form.Set("name", "   ")
	form.Set("base_man_hours", "0")
	form.Set("default_electricity_cost", "0")
	form.Set("production_lot_size", "1")
	form.Set("expected_quantity", "100")
	form.Set("expected_period_years", "1")

	req := httptest.NewRequest("POST", "/products", nil)
	req.Form = form

	if _, err := parseProductForm(req); err != errProductNameRequired {
		t.Fatalf("expected name validation error, got %v", err)
	}
}

func TestParseProductForm_DefaultsRegisteredAt(t *testing.T) {
	form := url.Values{}
	form.Set("name", "帆布ポーチ")
	form.Set("base_man_hours", "0")
	form.Set("default_electricity_cost", "0")
	form.Set("production_lot_size", "1")
	form.Set("expected_quantity", "100")
	form.Set("expected_period_years", "1")

	req := httptest.NewRequest("POST", "/products", nil)
	req.Form = form

	p, err := parseProductForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.RegisteredAt == "" {
		t.Fatalf("expected registered_at to default to today")
	}
}

func TestParseOptionalFloat(t *testing.T) {
	if v, err := parseOptionalFloat("  ", "時給上書き"); err != nil || v != nil {
		t.Fatalf("blank should yield nil, got %v / %v", v, err)
	}
	v, err := parseOptionalFloat("0", "時給上書き")
	if err != nil || v == nil || *v != 0 {
		t.Fatalf("explicit zero should yield pointer to 0, got %v / %v", v, err)
	}
	if _, err := parseOptionalFloat("abc", "時給上書き"); err == nil {
		t.Fatalf("expected error for non-numeric input")
	}
	if _, err := parseOptionalFloat("-3", "時給上書き"); err == nil {
		t.Fatalf("expected error for negative input")
	}
}

func TestParsePercentAndRatioBounds(t *testing.T) {
	if _, err := parsePercent("101", "使用率"); err == nil {
		t.Fatalf("expected error above 100")
	}
	if v, err := parsePercent("100", "使用率"); err != nil || v != 100 {
		t.Fatalf("expected 100 to pass, got %v / %v", v, err)
	}
	if _, err := parseRatio("1.5", "配賦率"); err == nil {
		t.Fatalf("expected error above 1")
	}
	if v, err := parseRatio("0.25", "配賦率"); err != nil || v != 0.25 {
		t.Fatalf("expected 0.25 to pass, got %v / %v", v, err)
	}
}

func TestSplitListHandlesJapaneseCommas(t *testing.T) {
	got := splitList(" S、 M ,L、 ")
	want := []string{"S", "M", "L"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := splitList(""); len(got) != 0 {
		t.Fatalf("blank input should yield no values, got %v", got)
	}
}

func TestFormCurrencyFallsBackToJPY(t *testing.T) {
	if got := formCurrency("USD"); got != "USD" {
		t.Fatalf("got %q", got)
	}
	if got := formCurrency("GBP"); got != "JPY" {
		t.Fatalf("unknown currency should fall back to JPY, got %q", got)
	}
	if got := formCurrency(""); got != "JPY" {
		t.Fatalf("blank currency should fall back to JPY, got %q", got)
	}
}
