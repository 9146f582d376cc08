//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package sales defines the retail sale record types, the CSV loader and
// the cleaning pass that removes incomplete records.
package sales

import "time"

// Record is a sale row exactly as loaded from the source file. Every
// field is optional at this stage; the cleaner decides which rows
// survive. SaleDate carries a calendar date at UTC midnight and SaleTime
// a time of day on the zero date.
type Record struct {
	// Line is the 1-based data row number in the source file,
	// excluding the header.
	Line int

	TransactionID *int64
	SaleDate      *time.Time
	SaleTime      *time.Time
	CustomerID    *int64
	Gender        *string
	Age           *int
	Category      *string
	Quantity      *int
	PricePerUnit  *float64
	COGS          *float64
	TotalSale     *float64
}

// Complete reports whether all required fields are present. CustomerID,
// Age and PricePerUnit are allowed to be null.
func (r Record) Complete() bool {
	return r.TransactionID != nil &&
		r.SaleDate != nil &&
		r.SaleTime != nil &&
		r.Gender != nil &&
		r.Category != nil &&
		r.Quantity != nil &&
		r.COGS != nil &&
		r.TotalSale != nil
}

// Sale is a cleaned sale row. Required fields are concrete values; the
// three nullable fields stay as pointers.
type Sale struct {
	TransactionID int64
	SaleDate      time.Time
	SaleTime      time.Time
	CustomerID    *int64
	Gender        string
	Age           *int
	Category      string
	Quantity      int
	PricePerUnit  *float64
	COGS          float64
	TotalSale     float64
}

// Record converts a cleaned sale back into the loader's row shape.
func (s Sale) Record() Record {
	txn := s.TransactionID
	date := s.SaleDate
	tod := s.SaleTime
	gender := s.Gender
	category := s.Category
	quantity := s.Quantity
	cogs := s.COGS
	total := s.TotalSale
	return Record{
		TransactionID: &txn,
		SaleDate:      &date,
		SaleTime:      &tod,
		CustomerID:    s.CustomerID,
		Gender:        &gender,
		Age:           s.Age,
		Category:      &category,
		Quantity:      &quantity,
		PricePerUnit:  s.PricePerUnit,
		COGS:          &cogs,
		TotalSale:     &total,
	}
}
