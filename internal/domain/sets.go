package domain

// SilverSet is the complete cleansed layer produced by one run. It is
// published atomically: either every table is replaced or none is.
type SilverSet struct {
	Customers    []CustomerProfile
	Products     []ProductVersion
	Sales        []SalesLine
	Demographics []CustomerDemographic
	Locations    []CustomerLocation
	Categories   []ProductCategory
}

// GoldSet is the complete dimensional model produced by one run.
type GoldSet struct {
	CustomerDim []CustomerDimension
	ProductDim  []ProductDimension
	SalesFact   []SalesFact
}
