package movements

import "inbound/infrastructure/stockmovement"

const (
	FilterOpen       = "open"
	FilterReceivable = "receivable"
	FilterAll        = "all"
)

type MovementRow struct {
	ID          int64  `bun:"id"`
	Identifier  string `bun:"identifier"`
	Name        string `bun:"name"`
	Origin      string `bun:"origin"`
	Destination string `bun:"destination"`
	Status      string `bun:"status"`
	DateShipped string `bun:"date_shipped"`
	LineCount   int    `bun:"line_count"`
}

type PageData struct {
	Filter   string
	IsAdmin  bool
	Message  string
	Statuses []stockmovement.Status
	Rows     []MovementRow
}

// NormalizeFilter maps unknown filters to FilterOpen.
func NormalizeFilter(v string) string {
	switch v {
	case FilterReceivable, FilterAll:
		return v
	default:
		return FilterOpen
	}
}
