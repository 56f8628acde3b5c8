// Package resources provides the application icon.
package resources

import (
	"bytes"
	"image/color"
	"sync"

	"digitpad-go/domain/drawing"
	"digitpad-go/infrastructure/imaging"

	"fyne.io/fyne/v2"
)

const iconSize = 256

var (
	iconOnce sync.Once
	iconData []byte
)

// iconStrokes is a hand-drawn "7" on the icon grid.
var iconStrokes = []drawing.Point{
	{X: 64, Y: 64}, {X: 192, Y: 64}, {X: 150, Y: 130}, {X: 112, Y: 200},
}

// GetAppIcon returns the application icon, rendered on first use.
func GetAppIcon() fyne.Resource {
	iconOnce.Do(func() {
		iconData = renderIcon()
	})
	return &fyne.StaticResource{
		StaticName:    "app_256.png",
		StaticContent: iconData,
	}
}

func renderIcon() []byte {
	ink := color.RGBA{R: 0x1e, G: 0x2a, B: 0x3a, A: 0xff}
	segments := make([]drawing.Segment, 0, len(iconStrokes)-1)
	for i := 1; i < len(iconStrokes); i++ {
		segments = append(segments, drawing.Segment{
			From:  iconStrokes[i-1],
			To:    iconStrokes[i],
			Width: 28,
			Color: ink,
		})
	}

	img := imaging.NewRenderer(iconSize, iconSize).Render(segments, color.RGBA{R: 0xf5, G: 0xf5, B: 0xf0, A: 0xff})

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.FormatPNG); err != nil {
		return nil
	}
	return buf.Bytes()
}
