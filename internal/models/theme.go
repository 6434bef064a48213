// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"regexp"
)

// Theme is one of the fixed set of UI presets a user can choose.
type Theme string

const (
	ThemeMinimalist    Theme = "minimalist"
	ThemeCyberpunk     Theme = "cyberpunk"
	ThemeBeachVacation Theme = "beach_vacation"
	ThemeMajorCity     Theme = "major_city"
	ThemeOuterSpace    Theme = "outer_space"
	ThemeCustom        Theme = "custom"

	// DefaultTheme is assigned to every new account.
	DefaultTheme = ThemeMinimalist
)

// AvailableThemes lists every accepted theme value in display order.
var AvailableThemes = []Theme{
	ThemeMinimalist,
	ThemeCyberpunk,
	ThemeBeachVacation,
	ThemeMajorCity,
	ThemeOuterSpace,
	ThemeCustom,
}

// ParseTheme returns the Theme named by s, or ErrValidation if s is not
// one of AvailableThemes.
func ParseTheme(s string) (Theme, error) {
	for _, t := range AvailableThemes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q: %w", s, ErrValidation)
}

// Defaults for the custom theme fields. Background and text colours differ
// per field, so each has its own constant.
const (
	DefaultFontSize      = 16
	DefaultBgPrimary     = "#ffffff"
	DefaultBgSecondary   = "#ffffff"
	DefaultTextPrimary   = "#000000"
	DefaultTextSecondary = "#000000"
	DefaultAccentColor   = "#000000"

	MinFontSize = 8
	MaxFontSize = 72
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CustomSettings holds the per-field overrides used when Theme is custom.
type CustomSettings struct {
	FontSize      int    `json:"font_size"`
	BgPrimary     string `json:"bg_primary"`
	BgSecondary   string `json:"bg_secondary"`
	TextPrimary   string `json:"text_primary"`
	TextSecondary string `json:"text_secondary"`
	AccentColor   string `json:"accent_color"`
}

// DefaultCustomSettings returns the column defaults of a fresh account.
func DefaultCustomSettings() CustomSettings {
	return CustomSettings{
		FontSize:      DefaultFontSize,
		BgPrimary:     DefaultBgPrimary,
		BgSecondary:   DefaultBgSecondary,
		TextPrimary:   DefaultTextPrimary,
		TextSecondary: DefaultTextSecondary,
		AccentColor:   DefaultAccentColor,
	}
}

// CustomSettingsInput is a partial custom theme configuration as submitted
// by a client. Nil fields fall back to their documented default, not to
// the value currently stored.
type CustomSettingsInput struct {
	FontSize      *int    `json:"font_size"`
	BgPrimary     *string `json:"bg_primary"`
	BgSecondary   *string `json:"bg_secondary"`
	TextPrimary   *string `json:"text_primary"`
	TextSecondary *string `json:"text_secondary"`
	AccentColor   *string `json:"accent_color"`
}

// Resolve fills absent fields with defaults and validates the result.
func (in CustomSettingsInput) Resolve() (CustomSettings, error) {
	cs := DefaultCustomSettings()
	if in.FontSize != nil {
		cs.FontSize = *in.FontSize
	}
	colors := []struct {
		src *string
		dst *string
	}{
		{in.BgPrimary, &cs.BgPrimary},
		{in.BgSecondary, &cs.BgSecondary},
		{in.TextPrimary, &cs.TextPrimary},
		{in.TextSecondary, &cs.TextSecondary},
		{in.AccentColor, &cs.AccentColor},
	}
	for _, c := range colors {
		if c.src != nil {
			*c.dst = *c.src
		}
	}
	return cs, cs.Validate()
}

// Validate checks the font size range and that every colour is #rrggbb.
func (cs CustomSettings) Validate() error {
	if cs.FontSize < MinFontSize || cs.FontSize > MaxFontSize {
		return fmt.Errorf("font size %d out of range: %w", cs.FontSize, ErrValidation)
	}
	for _, c := range []string{cs.BgPrimary, cs.BgSecondary, cs.TextPrimary, cs.TextSecondary, cs.AccentColor} {
		if !colorPattern.MatchString(c) {
			return fmt.Errorf("invalid colour %q: %w", c, ErrValidation)
		}
	}
	return nil
}
