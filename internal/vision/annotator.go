package vision

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"image/jpeg"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/aicuts/faceshape-api/internal/domain"
)

const (
	// outlineWidth is the stroke width of the shape overlay, independent of
	// box size.
	outlineWidth = 6

	labelFontSize = 24
	labelPadding  = 10

	jpegQuality = 90

	dataURIPrefix = "data:image/jpeg;base64,"
)

var labelFont *truetype.Font

func init() {
	var err error
	labelFont, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// shapeColors maps lowercased class labels to overlay colors. Unlisted labels
// draw in white.
var shapeColors = map[string]color.RGBA{
	"oval":        {R: 0, G: 255, B: 0, A: 255},
	"ovale":       {R: 0, G: 255, B: 0, A: 255},
	"round":       {R: 255, G: 0, B: 0, A: 255},
	"square":      {R: 0, G: 0, B: 255, A: 255},
	"rectangular": {R: 255, G: 255, B: 0, A: 255},
}

var defaultColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// ShapeColor returns the overlay color for a class label.
func ShapeColor(label string) color.RGBA {
	if c, ok := shapeColors[strings.ToLower(label)]; ok {
		return c
	}
	return defaultColor
}

// Label formats the overlay caption for a detection, e.g. "ROUND: 87.0%".
func Label(det domain.Detection) string {
	return fmt.Sprintf("%s: %.1f%%", strings.ToUpper(det.Label), det.Confidence*100)
}

// Annotate draws the shape overlay and caption for the winning detection onto
// the source image and returns the result as a base64 JPEG data URI. A source
// that cannot be decoded fails here rather than producing an unannotated
// passthrough.
func Annotate(imageData []byte, best domain.Detection) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", domain.ErrDecodeFailed.WithError(fmt.Errorf("decode source image: %w", err))
	}

	dc := gg.NewContextForImage(img)
	c := ShapeColor(best.Label)
	dc.SetColor(c)
	dc.SetLineWidth(outlineWidth)

	box := best.Box
	cx, cy := box.Center()
	w, h := box.Width(), box.Height()

	switch best.Shape() {
	case "oval", "ovale":
		dc.DrawEllipse(float64(cx), float64(cy), float64(w)/2, float64(h)/2)
	case "round":
		radius := w
		if h < w {
			radius = h
		}
		dc.DrawCircle(float64(cx), float64(cy), float64(radius)/2)
	case "square":
		side := w
		if h < w {
			side = h
		}
		dc.DrawRectangle(float64(cx)-float64(side)/2, float64(cy)-float64(side)/2, float64(side), float64(side))
	default:
		// rectangular and unrecognized labels use the box as-is
		dc.DrawRectangle(float64(box.X1), float64(box.Y1), float64(w), float64(h))
	}
	dc.Stroke()

	drawLabel(dc, best, c)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode annotated image: %w", err)
	}

	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// drawLabel paints the caption above the box top edge on an opaque background
// in the shape color, text in black.
func drawLabel(dc *gg.Context, det domain.Detection, c color.RGBA) {
	dc.SetFontFace(truetype.NewFace(labelFont, &truetype.Options{Size: labelFontSize}))

	label := Label(det)
	textW, textH := dc.MeasureString(label)

	x := float64(det.Box.X1)
	y := float64(det.Box.Y1)

	dc.SetColor(c)
	dc.DrawRectangle(x, y-textH-labelPadding, textW, textH+labelPadding)
	dc.Fill()

	dc.SetRGB(0, 0, 0)
	dc.DrawString(label, x, y-labelPadding/2)
}
