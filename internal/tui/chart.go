package tui

import (
	"fmt"
	"strings"

	"github.com/xela07ax/spaceai-threatboard/internal/domain"
)

const (
	// Минимальная полезная ширина зоны баров, чтобы график не схлопывался
	minBarArea = 10
	barRune    = "█"
)

// renderBars рисует горизонтальный бар-чарт по строкам графика.
// Ширина зоны баров масштабируется под терминал; бары нормируются
// на максимальный счетчик, нулевые значения остаются пустыми.
func renderBars(rows []domain.ChartRow, width int) string {
	labelWidth := 0
	maxCount := 0
	for _, row := range rows {
		if len(row.Name) > labelWidth {
			labelWidth = len(row.Name)
		}
		if row.Count > maxCount {
			maxCount = row.Count
		}
	}

	// label + пробел + бары + пробел + счетчик (до 6 знаков)
	barArea := width - labelWidth - 8
	if barArea < minBarArea {
		barArea = minBarArea
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}

		barLen := 0
		if maxCount > 0 && row.Count > 0 {
			barLen = row.Count * barArea / maxCount
			if barLen == 0 {
				barLen = 1 // ненулевое значение всегда видно хотя бы одной клеткой
			}
		}

		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, row.Name)))
		b.WriteString(" ")
		b.WriteString(barStyle.Render(strings.Repeat(barRune, barLen)))
		if barLen > 0 {
			b.WriteString(" ")
		}
		b.WriteString(countStyle.Render(fmt.Sprintf("%d", row.Count)))
	}

	return b.String()
}
