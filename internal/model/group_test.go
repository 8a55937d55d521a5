package model

import "testing"

func TestNormalizeColorPalette(t *testing.T) {
	for _, name := range GroupColorNames {
		if got := NormalizeColor(name); got != name {
			t.Fatalf("NormalizeColor(%q) = %q", name, got)
		}
	}
}

func TestNormalizeColorEmojiMigration(t *testing.T) {
	cases := map[string]string{
		"\U0001F534": "red",
		"\U0001F535": "blue",
		"\U000026AB": "gray",
		"\U0001F7E4": "brown", // legacy value outside the palette, kept as migrated
	}
	for emoji, want := range cases {
		if got := NormalizeColor(emoji); got != want {
			t.Fatalf("NormalizeColor(%q) = %q; want %q", emoji, got, want)
		}
	}
}

func TestNormalizeColorUnknownResets(t *testing.T) {
	if got := NormalizeColor("chartreuse"); got != DefaultColor {
		t.Fatalf("unknown name should reset to %q, got %q", DefaultColor, got)
	}
	if got := NormalizeColor(""); got != DefaultColor {
		t.Fatalf("empty color should reset to %q, got %q", DefaultColor, got)
	}
	if got := NormalizeColor("#A1B2C3"); got != "#A1B2C3" {
		t.Fatalf("hex literals must pass through, got %q", got)
	}
}

func TestHexColor(t *testing.T) {
	if got := (Group{Color: "blue"}).HexColor(); got != "#3B82F6" {
		t.Fatalf("HexColor(blue) = %q", got)
	}
	if got := (Group{Color: "#123456"}).HexColor(); got != "#123456" {
		t.Fatalf("HexColor(hex) = %q", got)
	}
	if got := (Group{Color: "brown"}).HexColor(); got != "#808080" {
		t.Fatalf("HexColor outside palette should fall back to gray, got %q", got)
	}
}
