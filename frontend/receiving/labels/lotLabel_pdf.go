package labels

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"
)

func renderLotLabelPDF(label LotLabelData, printedAt time.Time) ([]byte, error) {
	return renderLotLabelsPDF([]LotLabelData{label}, printedAt)
}

func renderLotLabelsPDF(labels []LotLabelData, printedAt time.Time) ([]byte, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("no lot labels to render")
	}

	pdf := gofpdf.New("L", "mm", "A6", "")
	pdf.SetTitle("Lot Labels", false)
	pdf.SetAutoPageBreak(false, 0)

	for _, label := range labels {
		if err := addLotLabelPage(pdf, label, printedAt); err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func addLotLabelPage(pdf *gofpdf.Fpdf, label LotLabelData, printedAt time.Time) error {
	barcodeValue := label.BarcodeValue()
	barcodePNG, err := renderCode128PNG(barcodeValue, 900, 200)
	if err != nil {
		return err
	}

	name := orDash(label.ProductName)
	lot := orDash(label.LotNumber)
	expiry := orDash(label.ExpirationDate)
	qty := "-"
	if label.QuantityShipped.Valid {
		qty = label.QuantityShipped.Decimal.String()
	}

	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	margin := 5.0
	x0, y0 := margin, margin
	w0 := pageW - 2*margin
	pdf.SetLineWidth(0.3)
	pdf.Rect(x0, y0, w0, pageH-2*margin, "")

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(x0+2, y0+2)
	pdf.CellFormat(w0-4, 4, orDash(label.MovementIdentifier)+"  "+orDash(label.Destination), "", 0, "L", false, 0, "")
	pdf.SetXY(x0+2, y0+2)
	pdf.CellFormat(w0-4, 4, "Bin "+orDash(label.BinLocation), "", 0, "R", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	codeFont := fitFontSizeForWidth(pdf, "Helvetica", "B", 22, 12, label.ProductCode, w0-6)
	pdf.SetFont("Helvetica", "B", codeFont)
	pdf.SetXY(x0+3, y0+8)
	pdf.CellFormat(w0-6, 9, label.ProductCode, "", 0, "L", false, 0, "")

	nameFont := fitFontSizeForWidth(pdf, "Helvetica", "", 12, 7, name, w0-6)
	pdf.SetFont("Helvetica", "", nameFont)
	pdf.SetXY(x0+3, y0+17)
	pdf.CellFormat(w0-6, 6, name, "", 0, "L", false, 0, "")

	half := (w0 - 6) / 2
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(x0+3, y0+25)
	pdf.CellFormat(half, 4, "Lot:", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 4, "Expiry:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", fitFontSizeForWidth(pdf, "Helvetica", "B", 16, 9, lot, half))
	pdf.SetXY(x0+3, y0+29)
	pdf.CellFormat(half, 8, lot, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(half, 8, expiry, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(x0+3, y0+38)
	pdf.CellFormat(half, 4, "Qty shipped:", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 4, "Printed:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(x0+3, y0+42)
	pdf.CellFormat(half, 7, qty, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(half, 7, printedAt.Format("01/02/2006"), "", 0, "L", false, 0, "")

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imageName := "lot-barcode-" + barcodeValue
	pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
	imgW := w0 - 16
	imgH := 22.0
	pdf.ImageOptions(imageName, x0+8, y0+52, imgW, imgH, false, opt, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(x0+3, y0+75)
	pdf.CellFormat(w0-6, 5, barcodeValue, "", 0, "C", false, 0, "")
	return nil
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func fitFontSizeForWidth(pdf *gofpdf.Fpdf, family, style string, base, minSize float64, text string, maxWidth float64) float64 {
	if maxWidth <= 0 {
		return minSize
	}
	size := base
	pdf.SetFont(family, style, size)
	for size > minSize && pdf.GetStringWidth(text) > maxWidth {
		size -= 0.5
		pdf.SetFont(family, style, size)
	}
	return size
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := png.Encode(&out, toNRGBA(scaled)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
