//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import (
	"testing"
	"time"
)

func intp(v int) *int { return &v }

func int64p(v int64) *int64 { return &v }

func floatp(v float64) *float64 { return &v }

func stringp(v string) *string { return &v }

func datep(v time.Time) *time.Time { return &v }

func completeRecord(txn int64) Record {
	date := time.Date(2022, 11, 5, 0, 0, 0, 0, time.UTC)
	tod := time.Date(0, 1, 1, 10, 30, 0, 0, time.UTC)
	return Record{
		TransactionID: int64p(txn),
		SaleDate:      datep(date),
		SaleTime:      datep(tod),
		CustomerID:    int64p(7),
		Gender:        stringp("Female"),
		Age:           intp(34),
		Category:      stringp("Clothing"),
		Quantity:      intp(2),
		PricePerUnit:  floatp(50),
		COGS:          floatp(41),
		TotalSale:     floatp(100),
	}
}

func TestCleanDropsIncomplete(t *testing.T) {
	missingGender := completeRecord(2)
	missingGender.Gender = nil
	missingCOGS := completeRecord(4)
	missingCOGS.COGS = nil

	records := []Record{
		completeRecord(1),
		missingGender,
		completeRecord(3),
		missingCOGS,
		completeRecord(5),
	}

	cleaned := Clean(records)
	if len(cleaned) != 3 {
		t.Fatalf("Expected 3 cleaned sales, got %d", len(cleaned))
	}

	// Relative order of survivors is preserved.
	want := []int64{1, 3, 5}
	for i, s := range cleaned {
		if s.TransactionID != want[i] {
			t.Errorf("Position %d: expected transaction %d, got %d",
				i, want[i], s.TransactionID)
		}
	}
}

func TestCleanKeepsNullableNulls(t *testing.T) {
	rec := completeRecord(1)
	rec.CustomerID = nil
	rec.Age = nil
	rec.PricePerUnit = nil

	cleaned := Clean([]Record{rec})
	if len(cleaned) != 1 {
		t.Fatalf("Expected record with only nullable nulls to survive")
	}
	if cleaned[0].CustomerID != nil || cleaned[0].Age != nil || cleaned[0].PricePerUnit != nil {
		t.Error("Nullable fields should stay null after cleaning")
	}
}

func TestCleanIdempotent(t *testing.T) {
	broken := completeRecord(2)
	broken.TotalSale = nil
	records := []Record{completeRecord(1), broken, completeRecord(3)}

	once := Clean(records)

	// Re-cleaning already-cleaned data is a no-op.
	again := make([]Record, 0, len(once))
	for _, s := range once {
		again = append(again, s.Record())
	}
	twice := Clean(again)

	if len(twice) != len(once) {
		t.Fatalf("Second clean changed row count: %d != %d", len(twice), len(once))
	}
	for i := range once {
		if once[i].TransactionID != twice[i].TransactionID {
			t.Errorf("Position %d changed: %d != %d",
				i, once[i].TransactionID, twice[i].TransactionID)
		}
	}
}

func TestCleanEmptyInput(t *testing.T) {
	if got := Clean(nil); len(got) != 0 {
		t.Errorf("Expected empty output, got %d rows", len(got))
	}
}
