package generator

import (
	"bytes"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

// QRConfig controls how a QR code is rendered.
type QRConfig struct {
	Size         int
	QuietZone    int // modules of empty border
	Background   color.Color
	Foreground   color.Color
	CornerRadius float64 // fraction of a module, 0.5 gives dots
	Logo         image.Image
	LogoScale    float64
}

var DefaultQR = QRConfig{
	Size:         512,
	QuietZone:    2,
	Background:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Foreground:   color.RGBA{R: 24, G: 24, B: 27, A: 255},
	CornerRadius: 0.3,
	LogoScale:    0.2,
}

// Generate renders content as a PNG QR code.
func (c QRConfig) Generate(content string) ([]byte, error) {
	level := qrcode.Medium
	if c.Logo != nil {
		level = qrcode.Highest
	}
	qr, err := qrcode.New(content, level)
	if err != nil {
		return nil, err
	}
	qr.DisableBorder = true
	bitmap := qr.Bitmap()

	modules := len(bitmap) + 2*c.QuietZone
	cell := float64(c.Size) / float64(modules)

	dc := gg.NewContext(c.Size, c.Size)
	dc.SetColor(c.Background)
	dc.Clear()

	dc.SetColor(c.Foreground)
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			px := float64(x+c.QuietZone) * cell
			py := float64(y+c.QuietZone) * cell
			dc.DrawRoundedRectangle(px, py, cell, cell, cell*c.CornerRadius)
		}
	}
	dc.Fill()

	if c.Logo != nil {
		logoSize := uint(float64(c.Size) * c.LogoScale)
		logo := resize.Resize(logoSize, logoSize, c.Logo, resize.Lanczos3)
		center := float64(c.Size) / 2

		dc.SetColor(c.Background)
		dc.DrawCircle(center, center, float64(logoSize)*0.6)
		dc.Fill()
		dc.DrawImageAnchored(logo, c.Size/2, c.Size/2, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err = dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
