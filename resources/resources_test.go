package resources

import (
	"bytes"
	"image/png"
	"testing"
)

func TestGetAppIcon(t *testing.T) {
	icon := GetAppIcon()
	if icon.Name() != "app_256.png" {
		t.Errorf("Name() = %v, want app_256.png", icon.Name())
	}

	img, err := png.Decode(bytes.NewReader(icon.Content()))
	if err != nil {
		t.Fatalf("icon is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != iconSize || b.Dy() != iconSize {
		t.Errorf("icon bounds = %v, want %dx%d", b, iconSize, iconSize)
	}

	if &GetAppIcon().Content()[0] != &icon.Content()[0] {
		t.Error("icon rendered more than once")
	}
}
