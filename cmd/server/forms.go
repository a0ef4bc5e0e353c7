package main

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var currencyOptions = []string{"JPY", "USD", "EUR"}

func queryMessage(msg string) string {
	return url.QueryEscape(msg)
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s は数値で入力してください", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s は0以上で入力してください", field)
	}
	return value, nil
}

func parsePositiveFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s は数値で入力してください", field)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s は0より大きい値で入力してください", field)
	}
	return value, nil
}

func parsePercent(raw, field string) (float64, error) {
	value, err := parseNonNegativeFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value > 100 {
		return 0, fmt.Errorf("%s は0〜100で入力してください", field)
	}
	return value, nil
}

func parseRatio(raw, field string) (float64, error) {
	value, err := parseNonNegativeFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value > 1 {
		return 0, fmt.Errorf("%s は0〜1で入力してください", field)
	}
	return value, nil
}

func parseNonNegativeInt(raw, field string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s は整数で入力してください", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s は0以上で入力してください", field)
	}
	return value, nil
}

// parseOptionalFloat returns nil for a blank field, so callers can tell
// "not entered" apart from an explicit 0.
func parseOptionalFloat(raw, field string) (*float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := parseNonNegativeFloat(raw, field)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// splitList turns comma-separated form input into trimmed values. Japanese
// commas work too.
func splitList(raw string) []string {
	raw = strings.ReplaceAll(raw, "、", ",")
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func formCurrency(raw string) string {
	for _, c := range currencyOptions {
		if raw == c {
			return c
		}
	}
	return "JPY"
}
