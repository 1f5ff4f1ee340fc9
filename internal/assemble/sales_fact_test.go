package assemble

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/medallion/internal/domain"
)

func TestSalesFactResolvesSurrogateKeys(t *testing.T) {
	customers := []domain.CustomerDimension{
		{SurrogateKey: 1, ID: 100, Key: "A"},
	}
	products := []domain.ProductDimension{
		{SurrogateKey: 1, ID: 10, Key: "P1"},
	}
	lines := []domain.SalesLine{
		{
			OrderNumber: "SO1",
			ProductKey:  "P1",
			CustomerID:  100,
			OrderDate:   datePtr(2023, time.March, 3),
			Quantity:    2,
			Amount:      decimal.NewFromInt(20),
			UnitPrice:   decimal.NewNullDecimal(decimal.NewFromInt(10)),
		},
	}

	facts := SalesFact(lines, customers, products)

	require.Len(t, facts, 1)
	require.NotNil(t, facts[0].CustomerSK)
	assert.Equal(t, int64(1), *facts[0].CustomerSK)
	require.NotNil(t, facts[0].ProductSK)
	assert.Equal(t, int64(1), *facts[0].ProductSK)
	assert.True(t, facts[0].Amount.Equal(decimal.NewFromInt(20)))
}

func TestSalesFactKeepsOrphanedLines(t *testing.T) {
	lines := []domain.SalesLine{
		{OrderNumber: "SO1", ProductKey: "MISSING", CustomerID: 999, Quantity: 1, Amount: decimal.NewFromInt(5)},
	}

	facts := SalesFact(lines, nil, nil)

	require.Len(t, facts, 1)
	assert.Nil(t, facts[0].CustomerSK)
	assert.Nil(t, facts[0].ProductSK)
	assert.Equal(t, "SO1", facts[0].OrderNumber)
}

func TestSalesFactPreservesRowCount(t *testing.T) {
	customers := []domain.CustomerDimension{{SurrogateKey: 1, ID: 1}}
	lines := make([]domain.SalesLine, 7)
	for i := range lines {
		lines[i] = domain.SalesLine{OrderNumber: "SO", CustomerID: int64(i % 2), Quantity: 1}
	}

	facts := SalesFact(lines, customers, nil)

	assert.Len(t, facts, len(lines))
}
