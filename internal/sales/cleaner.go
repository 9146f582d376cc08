//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

// Clean returns the subsequence of records where all required fields are
// present, converted to the cleaned Sale shape. Relative order is
// preserved and the input is never modified; records with a null in any
// nullable-only field (customer_id, age, price_per_unit) are kept.
func Clean(records []Record) []Sale {
	cleaned := make([]Sale, 0, len(records))
	for _, r := range records {
		if !r.Complete() {
			continue
		}
		cleaned = append(cleaned, Sale{
			TransactionID: *r.TransactionID,
			SaleDate:      *r.SaleDate,
			SaleTime:      *r.SaleTime,
			CustomerID:    r.CustomerID,
			Gender:        *r.Gender,
			Age:           r.Age,
			Category:      *r.Category,
			Quantity:      *r.Quantity,
			PricePerUnit:  r.PricePerUnit,
			COGS:          *r.COGS,
			TotalSale:     *r.TotalSale,
		})
	}
	return cleaned
}
