// ABOUTME: Sales transaction record parsed from the source CSV
// ABOUTME: Immutable input row; numeric fields are NaN when unparsable
package models

import (
	"math"
	"time"
)

// SalesRecord is one sales line item. Records are never mutated after load;
// unparsable numeric fields are NaN and unparsable dates are the zero time.
type SalesRecord struct {
	OrderNumber     int
	QuantityOrdered float64
	PriceEach       float64
	Sales           float64
	OrderDate       time.Time
	Status          string
	Year            int
	Quarter         int
	Month           int
	ProductLine     string
	ProductCode     string
	CustomerName    string
	Phone           string
	City            string
	State           string
	PostalCode      string
	Country         string
	Territory       string
	ContactName     string
	DealSize        string
}

// HasSales reports whether the sales amount parsed successfully.
func (r *SalesRecord) HasSales() bool {
	return !math.IsNaN(r.Sales)
}

// HasPrice reports whether the unit price parsed successfully.
func (r *SalesRecord) HasPrice() bool {
	return !math.IsNaN(r.PriceEach)
}

// HasQuantity reports whether the quantity parsed successfully.
func (r *SalesRecord) HasQuantity() bool {
	return !math.IsNaN(r.QuantityOrdered)
}
