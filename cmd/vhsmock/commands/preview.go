package commands

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/webp"

	"vhsmock/pkg/psdoc"
)

// preview <file>: open a produced asset, or a PSB/PSD composite, in a
// window for quick visual checking.
func previewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Display an asset or mockup composite in a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			img, err := loadPreviewImage(path)
			if err != nil {
				return err
			}

			a := app.New()
			w := a.NewWindow("vhsmock preview")
			w.Resize(fyne.NewSize(1024, 768))

			view := canvas.NewImageFromImage(img)
			view.FillMode = canvas.ImageFillContain

			b := img.Bounds()
			status := widget.NewLabel(fmt.Sprintf("%s — %dx%d", filepath.Base(path), b.Dx(), b.Dy()))

			w.SetContent(container.NewBorder(nil, status, nil, nil, view))
			w.ShowAndRun()
			return nil
		},
	}
	return cmd
}

func loadPreviewImage(path string) (image.Image, error) {
	switch filepath.Ext(path) {
	case ".psb", ".psd":
		doc, err := psdoc.Open(path)
		if err != nil {
			return nil, err
		}
		return doc.Composite(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
