package assemble

import "github.com/rpattn/medallion/internal/domain"

// SalesFact resolves each cleansed sales line against the assembled
// dimensions. A line whose customer or product has no dimension row keeps a
// nil surrogate key instead of being dropped, so orphaned facts stay visible
// to the quality gate. The output always has exactly one row per input line.
func SalesFact(
	lines []domain.SalesLine,
	customers []domain.CustomerDimension,
	products []domain.ProductDimension,
) []domain.SalesFact {
	customerSK := make(map[int64]int64, len(customers))
	for _, c := range customers {
		customerSK[c.ID] = c.SurrogateKey
	}
	productSK := make(map[string]int64, len(products))
	for _, p := range products {
		productSK[p.Key] = p.SurrogateKey
	}

	facts := make([]domain.SalesFact, 0, len(lines))
	for _, line := range lines {
		fact := domain.SalesFact{
			OrderNumber: line.OrderNumber,
			OrderDate:   line.OrderDate,
			ShipDate:    line.ShipDate,
			DueDate:     line.DueDate,
			Amount:      line.Amount,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		}
		if sk, ok := customerSK[line.CustomerID]; ok {
			key := sk
			fact.CustomerSK = &key
		}
		if sk, ok := productSK[line.ProductKey]; ok {
			key := sk
			fact.ProductSK = &key
		}
		facts = append(facts, fact)
	}
	return facts
}
