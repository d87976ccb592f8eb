package img

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vifordpro/budget-service/internal/currency"
	"github.com/vifordpro/budget-service/internal/model"
)

const (
	imageWidth = 640
	marginX    = 24
	lineHeight = 18
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Budget renders a budget as a PNG snapshot suitable for messaging apps.
// The built-in bitmap face only covers ASCII, so accented text is folded.
func (g *Generator) Budget(budget model.Budget) ([]byte, error) {
	lines := budgetLines(budget)

	height := lineHeight*(len(lines)+2) + marginX
	canvas := image.NewRGBA(image.Rect(0, 0, imageWidth, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	y := marginX
	for _, line := range lines {
		drawer.Dot = fixed.P(marginX, y)
		drawer.DrawString(asciiFold(line))
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func budgetLines(budget model.Budget) []string {
	format := func(amount float64) string {
		return currency.FormatIn(budget.Currency, amount)
	}

	lines := []string{
		budget.CompanyName,
	}
	if budget.CompanyRIF != "" {
		lines = append(lines, "RIF: "+budget.CompanyRIF)
	}
	lines = append(lines,
		"PRESUPUESTO N: "+budget.SequenceNumber,
		"",
		"Cliente: "+budget.ClientName,
		"Fecha: "+budget.DateLabel(),
		"",
		"MATERIALES:",
	)
	for i, item := range budget.LineItems {
		lines = append(lines,
			fmt.Sprintf("%d. %s  %g x %gm  x%d  %s",
				i+1, strings.ToUpper(item.Name), item.Width, item.Height, item.Quantity, format(item.Total)),
		)
	}
	lines = append(lines, "", "SUBTOTAL: "+format(budget.Subtotal))
	if budget.TaxEnabled {
		lines = append(lines, "IVA (16%): "+format(budget.Tax))
	}
	lines = append(lines, "TOTAL GENERAL: "+format(budget.Total))
	if budget.Notes != "" {
		lines = append(lines, "", "NOTAS: "+budget.Notes)
	}
	return lines
}

var foldTable = map[rune]rune{
	'á': 'a', 'é': 'e', 'í': 'i', 'ó': 'o', 'ú': 'u', 'ü': 'u', 'ñ': 'n',
	'Á': 'A', 'É': 'E', 'Í': 'I', 'Ó': 'O', 'Ú': 'U', 'Ü': 'U', 'Ñ': 'N',
	'°': ' ', '²': '2',
}

func asciiFold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if folded, ok := foldTable[r]; ok {
			r = folded
		}
		if r > 0x7e || r < 0x20 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
