// ABOUTME: Sales data processor: load, clean, and aggregate transactions
// ABOUTME: Produces customer profiles, the product catalog, and territory analyses
package data

import (
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/models"
)

// Summary reports the outcome of one full processing run.
type Summary struct {
	TotalRecords     int     `json:"total_records"`
	TotalCustomers   int     `json:"total_customers"`
	TotalProducts    int     `json:"total_products"`
	TotalTerritories int     `json:"total_territories"`
	DateStart        string  `json:"date_start"`
	DateEnd          string  `json:"date_end"`
	TotalSales       float64 `json:"total_sales"`
	AvgOrderValue    float64 `json:"avg_order_value"`
}

// TerritoryInsights is the roll-up view over all territory analyses.
type TerritoryInsights struct {
	TotalTerritories int                         `json:"total_territories"`
	TopTerritory     *models.TerritoryAnalysis   `json:"top_territory"`
	Breakdown        []*models.TerritoryAnalysis `json:"breakdown"`
}

// Processor owns the three aggregate collections for the lifetime of one
// processing run. A second ProcessAll overwrites rather than merges.
type Processor struct {
	path    string
	records []models.SalesRecord

	customers      map[string]*models.CustomerProfile
	customerOrder  []string
	products       map[string]*models.ProductEntry
	productOrder   []string
	territories    map[string]*models.TerritoryAnalysis
	territoryOrder []string
}

// NewProcessor creates a processor for the CSV at path.
func NewProcessor(path string) *Processor {
	return &Processor{path: path}
}

// ProcessAll runs load, clean, and all three aggregations, returning the
// run summary. On a load failure no partial aggregate state is exposed.
func (p *Processor) ProcessAll() (*Summary, error) {
	header, rows, err := loadRows(p.path)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d sales records", len(rows))

	records := p.clean(header, rows)
	p.records = records
	p.customers = make(map[string]*models.CustomerProfile)
	p.customerOrder = nil
	p.products = make(map[string]*models.ProductEntry)
	p.productOrder = nil
	p.territories = make(map[string]*models.TerritoryAnalysis)
	p.territoryOrder = nil

	p.buildCustomerProfiles()
	p.buildProductCatalog()
	p.buildTerritoryAnalysis()

	summary := p.summarize()
	log.Printf("Data processing completed: %d records, %d customers, %d products, %d territories, %s to %s",
		summary.TotalRecords, summary.TotalCustomers, summary.TotalProducts,
		summary.TotalTerritories, summary.DateStart, summary.DateEnd)
	return summary, nil
}

// clean coerces typed columns, fills missing state/postal fields and drops
// exact-duplicate rows, logging the removed count.
func (p *Processor) clean(header map[string]int, rows [][]string) []models.SalesRecord {
	seen := make(map[string]struct{}, len(rows))
	records := make([]models.SalesRecord, 0, len(rows))
	removed := 0

	for _, row := range rows {
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}

		field := func(name string) string {
			if i, ok := header[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		rec := models.SalesRecord{
			OrderNumber:     parseIntField(field("ORDERNUMBER")),
			QuantityOrdered: parseNumeric(field("QUANTITYORDERED")),
			PriceEach:       parseNumeric(field("PRICEEACH")),
			Sales:           parseNumeric(field("SALES")),
			OrderDate:       parseDate(field("ORDERDATE")),
			Status:          field("STATUS"),
			Year:            parseIntField(field("YEAR_ID")),
			Quarter:         parseIntField(field("QTR_ID")),
			Month:           parseIntField(field("MONTH_ID")),
			ProductLine:     field("PRODUCTLINE"),
			ProductCode:     field("PRODUCTCODE"),
			CustomerName:    field("CUSTOMERNAME"),
			Phone:           field("PHONE"),
			City:            field("CITY"),
			State:           fillUnknown(field("STATE")),
			PostalCode:      fillUnknown(field("POSTALCODE")),
			Country:         field("COUNTRY"),
			Territory:       field("TERRITORY"),
			ContactName:     strings.TrimSpace(field("CONTACTFIRSTNAME") + " " + field("CONTACTLASTNAME")),
			DealSize:        field("DEALSIZE"),
		}
		records = append(records, rec)
	}

	log.Printf("Removed %d duplicate records, %d remain", removed, len(records))
	return records
}

type customerAcc struct {
	first      *models.SalesRecord
	orders     int
	sales      float64
	products   *freqCounter
	dealSizes  []string
	dealSeen   map[string]struct{}
	lastOrder  time.Time
	anyShipped bool
}

func (p *Processor) buildCustomerProfiles() {
	accs := make(map[string]*customerAcc)
	var order []string

	for i := range p.records {
		r := &p.records[i]
		if r.CustomerName == "" {
			continue
		}
		acc, ok := accs[r.CustomerName]
		if !ok {
			acc = &customerAcc{
				first:    r,
				products: newFreqCounter(),
				dealSeen: make(map[string]struct{}),
			}
			accs[r.CustomerName] = acc
			order = append(order, r.CustomerName)
		}
		acc.orders++
		if r.HasSales() {
			acc.sales += r.Sales
		}
		if r.ProductLine != "" {
			acc.products.Add(r.ProductLine)
		}
		if r.DealSize != "" {
			if _, seen := acc.dealSeen[r.DealSize]; !seen {
				acc.dealSeen[r.DealSize] = struct{}{}
				acc.dealSizes = append(acc.dealSizes, r.DealSize)
			}
		}
		if r.OrderDate.After(acc.lastOrder) {
			acc.lastOrder = r.OrderDate
		}
		if r.Status == "Shipped" {
			acc.anyShipped = true
		}
	}

	for _, name := range order {
		acc := accs[name]
		status := models.CustomerInactive
		if acc.anyShipped {
			status = models.CustomerActive
		}
		avg := 0.0
		if acc.orders > 0 {
			avg = acc.sales / float64(acc.orders)
		}
		p.customers[name] = &models.CustomerProfile{
			Name:              name,
			Phone:             acc.first.Phone,
			City:              acc.first.City,
			State:             acc.first.State,
			Country:           acc.first.Country,
			Territory:         acc.first.Territory,
			ContactName:       acc.first.ContactName,
			TotalOrders:       acc.orders,
			TotalSales:        acc.sales,
			AvgOrderValue:     avg,
			PreferredProducts: []string{acc.products.Most()},
			DealSizes:         acc.dealSizes,
			LastOrderDate:     acc.lastOrder,
			CustomerStatus:    status,
		}
		p.customerOrder = append(p.customerOrder, name)
	}
	log.Printf("Created %d customer profiles", len(p.customers))
}

type productAcc struct {
	line, code string
	sales      float64
	salesCount int
	orders     int
	priceSum   float64
	priceCount int
	quantity   float64
	dealSizes  *freqCounter
}

func (p *Processor) buildProductCatalog() {
	accs := make(map[string]*productAcc)
	var order []string

	for i := range p.records {
		r := &p.records[i]
		if r.ProductLine == "" && r.ProductCode == "" {
			continue
		}
		key := r.ProductLine + "_" + r.ProductCode
		acc, ok := accs[key]
		if !ok {
			acc = &productAcc{line: r.ProductLine, code: r.ProductCode, dealSizes: newFreqCounter()}
			accs[key] = acc
			order = append(order, key)
		}
		acc.orders++
		if r.HasSales() {
			acc.sales += r.Sales
			acc.salesCount++
		}
		if r.HasPrice() {
			acc.priceSum += r.PriceEach
			acc.priceCount++
		}
		if r.HasQuantity() {
			acc.quantity += r.QuantityOrdered
		}
		if r.DealSize != "" {
			acc.dealSizes.Add(r.DealSize)
		}
	}

	// Global maxima first: the performance score needs the full product set.
	var maxSales, maxQuantity float64
	maxOrders := 0
	for _, acc := range accs {
		maxSales = math.Max(maxSales, acc.sales)
		maxQuantity = math.Max(maxQuantity, acc.quantity)
		if acc.orders > maxOrders {
			maxOrders = acc.orders
		}
	}

	for _, key := range order {
		acc := accs[key]
		avgSales := 0.0
		if acc.salesCount > 0 {
			avgSales = acc.sales / float64(acc.salesCount)
		}
		avgPrice := 0.0
		if acc.priceCount > 0 {
			avgPrice = acc.priceSum / float64(acc.priceCount)
		}
		typical := acc.dealSizes.Most()
		if typical == "" {
			typical = "Unknown"
		}
		p.products[key] = &models.ProductEntry{
			ProductLine:      acc.line,
			ProductCode:      acc.code,
			TotalSales:       acc.sales,
			AvgSales:         avgSales,
			OrderCount:       acc.orders,
			AvgPrice:         avgPrice,
			TotalQuantity:    acc.quantity,
			TypicalDealSize:  typical,
			PerformanceScore: performanceScore(acc, maxSales, maxOrders, maxQuantity),
		}
		p.productOrder = append(p.productOrder, key)
	}
	log.Printf("Analyzed %d products", len(p.products))
}

// performanceScore is the weighted composite of normalized sales, order
// count, and quantity. Zero maxima contribute zero, so an all-zero product
// scores 0 with no division by zero.
func performanceScore(acc *productAcc, maxSales float64, maxOrders int, maxQuantity float64) float64 {
	var salesScore, orderScore, quantityScore float64
	if maxSales > 0 {
		salesScore = acc.sales / maxSales
	}
	if maxOrders > 0 {
		orderScore = float64(acc.orders) / float64(maxOrders)
	}
	if maxQuantity > 0 {
		quantityScore = acc.quantity / maxQuantity
	}
	return salesScore*0.5 + orderScore*0.3 + quantityScore*0.2
}

type territoryAcc struct {
	sales      float64
	salesCount int
	orders     int
	customers  map[string]struct{}
	products   *freqCounter
	dealSizes  *freqCounter
}

func (p *Processor) buildTerritoryAnalysis() {
	accs := make(map[string]*territoryAcc)
	var order []string

	for i := range p.records {
		r := &p.records[i]
		if r.Territory == "" {
			continue
		}
		acc, ok := accs[r.Territory]
		if !ok {
			acc = &territoryAcc{
				customers: make(map[string]struct{}),
				products:  newFreqCounter(),
				dealSizes: newFreqCounter(),
			}
			accs[r.Territory] = acc
			order = append(order, r.Territory)
		}
		acc.orders++
		if r.HasSales() {
			acc.sales += r.Sales
			acc.salesCount++
		}
		acc.customers[r.CustomerName] = struct{}{}
		if r.ProductLine != "" {
			acc.products.Add(r.ProductLine)
		}
		if r.DealSize != "" {
			acc.dealSizes.Add(r.DealSize)
		}
	}

	grandTotal := 0.0
	for _, acc := range accs {
		grandTotal += acc.sales
	}

	for _, name := range order {
		acc := accs[name]
		avg := 0.0
		if acc.salesCount > 0 {
			avg = acc.sales / float64(acc.salesCount)
		}
		share := 0.0
		if grandTotal > 0 {
			share = acc.sales / grandTotal * 100
		}
		p.territories[name] = &models.TerritoryAnalysis{
			Territory:        name,
			TotalSales:       acc.sales,
			AvgSales:         avg,
			TotalOrders:      acc.orders,
			UniqueCustomers:  len(acc.customers),
			TopProducts:      acc.products.Top(3),
			DealDistribution: acc.dealSizes.Counts(),
			MarketShare:      share,
		}
		p.territoryOrder = append(p.territoryOrder, name)
	}
	log.Printf("Analyzed %d territories", len(p.territories))
}

func (p *Processor) summarize() *Summary {
	var totalSales float64
	salesCount := 0
	var minDate, maxDate time.Time
	for i := range p.records {
		r := &p.records[i]
		if r.HasSales() {
			totalSales += r.Sales
			salesCount++
		}
		if !r.OrderDate.IsZero() {
			if minDate.IsZero() || r.OrderDate.Before(minDate) {
				minDate = r.OrderDate
			}
			if r.OrderDate.After(maxDate) {
				maxDate = r.OrderDate
			}
		}
	}
	avg := 0.0
	if salesCount > 0 {
		avg = totalSales / float64(salesCount)
	}
	s := &Summary{
		TotalRecords:     len(p.records),
		TotalCustomers:   len(p.customers),
		TotalProducts:    len(p.products),
		TotalTerritories: len(p.territories),
		TotalSales:       totalSales,
		AvgOrderValue:    avg,
	}
	if !minDate.IsZero() {
		s.DateStart = minDate.Format("2006-01-02")
		s.DateEnd = maxDate.Format("2006-01-02")
	}
	return s
}

// Customers returns the customer profiles keyed by name.
func (p *Processor) Customers() map[string]*models.CustomerProfile { return p.customers }

// Products returns the product catalog keyed by "LINE_CODE".
func (p *Processor) Products() map[string]*models.ProductEntry { return p.products }

// Territories returns the territory analyses keyed by territory name.
func (p *Processor) Territories() map[string]*models.TerritoryAnalysis { return p.territories }

// Aggregates bundles the three collections in first-encountered order for
// deterministic sequential processing.
func (p *Processor) Aggregates() *models.Aggregates {
	agg := &models.Aggregates{}
	for _, name := range p.customerOrder {
		agg.Customers = append(agg.Customers, p.customers[name])
	}
	for _, key := range p.productOrder {
		agg.Products = append(agg.Products, p.products[key])
	}
	for _, name := range p.territoryOrder {
		agg.Territories = append(agg.Territories, p.territories[name])
	}
	return agg
}

// TopCustomers returns the n customers with the highest total sales.
func (p *Processor) TopCustomers(n int) []*models.CustomerProfile {
	out := make([]*models.CustomerProfile, 0, len(p.customers))
	for _, name := range p.customerOrder {
		out = append(out, p.customers[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSales > out[j].TotalSales
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TopProducts returns the n products with the highest performance score.
func (p *Processor) TopProducts(n int) []*models.ProductEntry {
	out := make([]*models.ProductEntry, 0, len(p.products))
	for _, key := range p.productOrder {
		out = append(out, p.products[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PerformanceScore > out[j].PerformanceScore
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TerritoryInsights rolls up the territory breakdown with the top territory
// by total sales.
func (p *Processor) TerritoryInsights() *TerritoryInsights {
	insights := &TerritoryInsights{TotalTerritories: len(p.territories)}
	for _, name := range p.territoryOrder {
		t := p.territories[name]
		insights.Breakdown = append(insights.Breakdown, t)
		if insights.TopTerritory == nil || t.TotalSales > insights.TopTerritory.TotalSales {
			insights.TopTerritory = t
		}
	}
	return insights
}

// Parsing helpers. Unparsable values become "missing" rather than errors.

func parseNumeric(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseIntField(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

var dateFormats = []string{
	"1/2/2006 15:04",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) time.Time {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func fillUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
