package services

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QROptions configures a share QR code for a bio page URL.
type QROptions struct {
	Content string
	Size    int
	FgColor string // hex code, e.g. "#000000"
	BgColor string // hex code, e.g. "#FFFFFF"
}

// GenerateQRCode renders the QR code as PNG bytes.
func GenerateQRCode(opts QROptions) ([]byte, error) {
	qr, err := qrcode.New(opts.Content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	qr.ForegroundColor = parseHexColor(opts.FgColor, color.Black)
	qr.BackgroundColor = parseHexColor(opts.BgColor, color.White)

	img := qr.Image(opts.Size)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateQRCodeSVG renders the QR code as an inline SVG string. The
// colors are re-serialized from their parsed form; raw caller input
// never reaches the markup.
func GenerateQRCodeSVG(opts QROptions) (string, error) {
	qr, err := qrcode.New(opts.Content, qrcode.Medium)
	if err != nil {
		return "", err
	}

	fg := normalizeHexColor(opts.FgColor, "#000000")
	bg := normalizeHexColor(opts.BgColor, "#FFFFFF")

	qr.DisableBorder = true
	bitmap := qr.Bitmap()
	size := len(bitmap)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" shape-rendering="crispEdges">`, size, size))
	sb.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>`, bg))
	sb.WriteString(fmt.Sprintf(`<path fill="%s" d="`, fg))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if bitmap[y][x] {
				sb.WriteString(fmt.Sprintf("M%d %dh1v1h-1z ", x, y))
			}
		}
	}
	sb.WriteString(`"/>`)
	sb.WriteString("</svg>")
	return sb.String(), nil
}

func parseHexColor(s string, defaultColor color.Color) color.Color {
	rgba, ok := hexRGB(s)
	if !ok {
		return defaultColor
	}
	return rgba
}

// normalizeHexColor returns the canonical #rrggbb form of s, or the
// fallback when s is not a hex color. SVG output must only ever
// interpolate this normalized form.
func normalizeHexColor(s, fallback string) string {
	rgba, ok := hexRGB(s)
	if !ok {
		return fallback
	}
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func hexRGB(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}

	hexToByte := func(c byte) (byte, bool) {
		switch {
		case c >= '0' && c <= '9':
			return c - '0', true
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10, true
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10, true
		}
		return 0, false
	}

	var nibbles [6]byte
	for i := 0; i < 6; i++ {
		n, ok := hexToByte(s[i])
		if !ok {
			return color.RGBA{}, false
		}
		nibbles[i] = n
	}

	return color.RGBA{
		R: nibbles[0]<<4 + nibbles[1],
		G: nibbles[2]<<4 + nibbles[3],
		B: nibbles[4]<<4 + nibbles[5],
		A: 255,
	}, true
}
