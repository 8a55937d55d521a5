package model

import "strings"

// DefaultColor is assigned when a stored color is neither a palette name
// nor a hex literal.
const DefaultColor = "red"

// groupColors maps the 12 palette names to their hex values.
var groupColors = map[string]string{
	"red":    "#EF4444",
	"orange": "#F97316",
	"yellow": "#EAB308",
	"lime":   "#84CC16",
	"green":  "#22C55E",
	"teal":   "#14B8A6",
	"cyan":   "#06B6D4",
	"blue":   "#3B82F6",
	"indigo": "#6366F1",
	"purple": "#8B5CF6",
	"pink":   "#EC4899",
	"gray":   "#6B7280",
}

// emojiColors migrates the legacy emoji color encoding to palette names.
// Older data files stored the colored-circle emoji directly.
var emojiColors = map[string]string{
	"\U0001F534": "red",
	"\U0001F7E0": "orange",
	"\U0001F7E1": "yellow",
	"\U0001F7E2": "green",
	"\U0001F535": "blue",
	"\U0001F7E3": "purple",
	"\U000026AB": "gray",
	"\U0001F7E4": "brown",
}

// GroupColorNames lists the palette names in display order.
var GroupColorNames = []string{
	"red", "orange", "yellow", "lime", "green", "teal",
	"cyan", "blue", "indigo", "purple", "pink", "gray",
}

// Group organizes accounts. Name is the identity; accounts reference
// groups by name, so renames cascade through the account collection.
type Group struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewGroup constructs a group with a normalized color value.
func NewGroup(name, color string) Group {
	return Group{Name: name, Color: NormalizeColor(color)}
}

// NormalizeColor migrates emoji-coded colors to palette names and resets
// unrecognized non-hex values to the default instead of failing.
func NormalizeColor(color string) string {
	if mapped, ok := emojiColors[color]; ok {
		return mapped
	}
	if _, ok := groupColors[color]; ok {
		return color
	}
	if strings.HasPrefix(color, "#") {
		return color
	}
	if color == "" {
		return DefaultColor
	}
	// Migrated values outside the palette (e.g. "brown") pass through
	// NewGroup only via the emoji table; anything else resets.
	return DefaultColor
}

// HexColor resolves the group's color to a hex literal, falling back to
// neutral gray for names outside the palette.
func (g Group) HexColor() string {
	if strings.HasPrefix(g.Color, "#") {
		return g.Color
	}
	if hex, ok := groupColors[g.Color]; ok {
		return hex
	}
	return "#808080"
}
