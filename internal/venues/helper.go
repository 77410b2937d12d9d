package venues

import "fmt"

// SlotGrid generates slot ids row by row: rows "AB", cols 2 -> A1 A2 B1 B2
func SlotGrid(rows string, cols int) []string {
	slots := make([]string, 0, len(rows)*cols)
	for _, row := range rows {
		for col := 1; col <= cols; col++ {
			slots = append(slots, fmt.Sprintf("%c%d", row, col))
		}
	}
	return slots
}
