package presentation

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewStartupErrorWindow builds a window reporting a fatal startup error.
// Closing it quits the app.
func NewStartupErrorWindow(app fyne.App, message string, err error) fyne.Window {
	w := app.NewWindow(windowTitle + " - Error")

	detail := widget.NewLabel("")
	if err != nil {
		detail.SetText(err.Error())
	}
	detail.Wrapping = fyne.TextWrapWord

	quit := widget.NewButtonWithIcon("Quit", theme.CancelIcon(), func() {
		w.Close()
	})

	w.SetContent(container.NewBorder(
		container.NewHBox(widget.NewIcon(theme.ErrorIcon()), widget.NewLabelWithStyle(message, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})),
		container.NewCenter(quit),
		nil, nil,
		detail,
	))
	w.Resize(fyne.NewSize(480, 180))
	w.SetOnClosed(app.Quit)
	return w
}
