package domain

// InventoryEntry is a single inventory row owned by one player.
// Repeated grants of the same item append new entries; entries are never merged.
type InventoryEntry struct {
	ID       int64  `json:"id"`
	PlayerID int64  `json:"player_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// CountByName sums quantities per item name.
func CountByName(entries []InventoryEntry) map[string]int {
	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[e.ItemName] += e.Quantity
	}
	return counts
}
