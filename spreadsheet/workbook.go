package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"wordler/models"

	"github.com/xuri/excelize/v2"
)

// ResultsSheet is the sheet holding one scored result per row
const ResultsSheet = "results"

var header = []string{
	"chat_id", "date", "game_number", "player", "attempts_label", "solved",
	"base_score", "bonus_points", "total_score", "grid", "arrived_at",
}

// NewWorkbook returns an in-memory workbook with the results header and rows for records
func NewWorkbook(records []models.PersistRequest) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), ResultsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name results sheet: %w", err)
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(ResultsSheet, "A1", &headerRow); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	if err := styleHeader(f); err != nil {
		f.Close()
		return nil, err
	}

	for i, rec := range records {
		if err := writeRecord(f, i+2, rec); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// styleHeader makes the header row bold
func styleHeader(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("failed to locate last header column: %w", err)
	}

	if err := f.SetCellStyle(ResultsSheet, "A1", lastCol+"1", style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}

// WriteWorkbook writes records as an .xlsx document
func WriteWorkbook(w io.Writer, records []models.PersistRequest) error {
	f, err := NewWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ReadWorkbook reads every record from an .xlsx document
func ReadWorkbook(r io.Reader) ([]models.PersistRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	return readRecords(f)
}

func readRecords(f *excelize.File) ([]models.PersistRequest, error) {
	rows, err := f.GetRows(ResultsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", ResultsSheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var records []models.PersistRequest
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func writeRecord(f *excelize.File, rowNum int, rec models.PersistRequest) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", rowNum, err)
	}

	values := []interface{}{
		rec.ChatID,
		rec.Date.Format(models.DateLayout),
		rec.GameNumber,
		rec.Player,
		string(rec.AttemptsLabel),
		strconv.FormatBool(rec.Solved),
		rec.BaseScore,
		rec.BonusPoints,
		rec.TotalScore,
		rec.Grid,
		rec.ArrivedAt.UTC().Format(time.RFC3339Nano),
	}
	if err := f.SetSheetRow(ResultsSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

func parseRecord(row []string) (models.PersistRequest, error) {
	cols := make([]string, len(header))
	copy(cols, row)

	date, err := time.Parse(models.DateLayout, cols[1])
	if err != nil {
		return models.PersistRequest{}, fmt.Errorf("invalid date %q: %w", cols[1], err)
	}

	ints := make([]int, 0, 4)
	for _, idx := range []int{2, 6, 7, 8} {
		n, err := strconv.Atoi(strings.TrimSpace(cols[idx]))
		if err != nil {
			return models.PersistRequest{}, fmt.Errorf("invalid %s %q: %w", header[idx], cols[idx], err)
		}
		ints = append(ints, n)
	}

	solved, err := strconv.ParseBool(strings.TrimSpace(cols[5]))
	if err != nil {
		return models.PersistRequest{}, fmt.Errorf("invalid solved %q: %w", cols[5], err)
	}

	var arrivedAt time.Time
	if cols[10] != "" {
		arrivedAt, err = time.Parse(time.RFC3339Nano, cols[10])
		if err != nil {
			return models.PersistRequest{}, fmt.Errorf("invalid arrived_at %q: %w", cols[10], err)
		}
	}

	return models.PersistRequest{
		ChatID:        cols[0],
		Date:          date,
		GameNumber:    ints[0],
		Player:        cols[3],
		AttemptsLabel: models.AttemptsLabel(strings.ToUpper(cols[4])),
		Solved:        solved,
		BaseScore:     ints[1],
		BonusPoints:   ints[2],
		TotalScore:    ints[3],
		Grid:          cols[9],
		ArrivedAt:     arrivedAt,
	}, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
