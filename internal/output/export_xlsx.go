package output

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KouSug/G-I-buildcard/internal/build"
	"github.com/KouSug/G-I-buildcard/internal/score"
)

// ExportScoreXLSX writes a one-sheet artifact score report: a row per slot
// with set, level, main stat, substats, score and rank, then a totals row.
func ExportScoreXLSX(path string, b build.BuildData) error {
	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Slot", "Set", "Level", "Main Stat", "Substats", "Score", "Rank"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "G1", headerStyleID); err != nil {
		return err
	}

	base := b.ScoreBase
	if base == "" {
		base = build.BaseAtk
	}

	row := 2
	for _, a := range b.Artifacts.All() {
		s := score.ArtifactScore(a, base)
		rank := score.ArtifactRank(s, a.Slot)

		subs := make([]string, 0, len(a.SubStats))
		for _, sub := range a.SubStats {
			subs = append(subs, fmt.Sprintf("%s %s", sub.Label, sub.Value))
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), string(a.Slot))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), a.Set)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), a.Level)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%s %s", a.MainStat.Label, a.MainStat.Value))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), strings.Join(subs, ", "))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), s)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), rank.Label)
		row++
	}

	total := score.TotalScore(b.Artifacts, base)
	totalRank := score.TotalRank(total)
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), total)
	f.SetCellValue(sheet, fmt.Sprintf("G%d", row), totalRank.Label)

	totalStyleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), totalStyleID); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx %s: %w", path, err)
	}
	return nil
}
