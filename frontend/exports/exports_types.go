package exports

// Table is a rendered export: one header row plus data rows.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

var receivingHeaders = []string{
	"movement", "bin_location", "product_code", "product_name", "lot_number",
	"expiration_date", "quantity_shipped", "quantity_receiving", "quantity_on_hand",
}
