package testutil

import (
	"fmt"
	"time"

	"wordler/models"
)

// CreateTestResult builds a scored result whose grid is one all-green row per attempt,
// or six all-gray rows for a failed game
func CreateTestResult(chatID, playerID string, gameNumber int, label models.AttemptsLabel, arrivedAt time.Time) models.ScoredResult {
	var grid []models.GridRow
	if label.Solved() {
		for i := 1; i < label.Attempts(); i++ {
			grid = append(grid, fullRow(models.SymbolGrayDark))
		}
		grid = append(grid, fullRow(models.SymbolGreen))
	} else {
		for i := 0; i < models.MaxGridRows; i++ {
			grid = append(grid, fullRow(models.SymbolGrayDark))
		}
	}

	parsed, err := models.NewParsedResult(gameNumber, label, grid)
	if err != nil {
		panic(fmt.Sprintf("invalid test result: %v", err))
	}
	result, err := models.NewScoredResult(parsed, playerID, chatID, arrivedAt, arrivedAt.Location())
	if err != nil {
		panic(fmt.Sprintf("invalid test result: %v", err))
	}
	return result
}

// CreateTestRecord builds the persistence record for CreateTestResult
func CreateTestRecord(chatID, playerID string, gameNumber int, label models.AttemptsLabel, arrivedAt time.Time) models.PersistRequest {
	return CreateTestResult(chatID, playerID, gameNumber, label, arrivedAt).Record()
}

func fullRow(s models.Symbol) models.GridRow {
	return models.GridRow{s, s, s, s, s}
}
