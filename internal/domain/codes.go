package domain

import "strings"

// MaritalStatus is the canonical marital status label for a customer.
type MaritalStatus string

const (
	MaritalStatusMarried MaritalStatus = "Married"
	MaritalStatusSingle  MaritalStatus = "Single"
	MaritalStatusUnknown MaritalStatus = "Unknown"
)

// Gender is the canonical gender label for a customer.
type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderUnknown Gender = "Unknown"
)

// ProductLine is the canonical product line label.
type ProductLine string

const (
	ProductLineMountain   ProductLine = "Mountain"
	ProductLineRoad       ProductLine = "Road"
	ProductLineOtherSales ProductLine = "Other Sales"
	ProductLineTouring    ProductLine = "Touring"
	ProductLineUnknown    ProductLine = "Unknown"
)

var maritalStatusCodes = map[string]MaritalStatus{
	"M": MaritalStatusMarried,
	"S": MaritalStatusSingle,
}

var genderCodes = map[string]Gender{
	"M":      GenderMale,
	"MALE":   GenderMale,
	"F":      GenderFemale,
	"FEMALE": GenderFemale,
}

var productLineCodes = map[string]ProductLine{
	"M": ProductLineMountain,
	"R": ProductLineRoad,
	"S": ProductLineOtherSales,
	"T": ProductLineTouring,
}

var countryCodes = map[string]string{
	"DE":  "Germany",
	"US":  "United States",
	"USA": "United States",
}

// UnknownCountry is the sentinel used when a location has no usable country.
const UnknownCountry = "Unknown"

// NormalizeMaritalStatus maps a raw marital status code to its canonical label.
// Unrecognized or empty codes map to the Unknown sentinel, never to an empty value.
func NormalizeMaritalStatus(raw string) MaritalStatus {
	if status, ok := maritalStatusCodes[normalizeCode(raw)]; ok {
		return status
	}
	return MaritalStatusUnknown
}

// NormalizeGender maps a raw gender code to its canonical label.
func NormalizeGender(raw string) Gender {
	if gender, ok := genderCodes[normalizeCode(raw)]; ok {
		return gender
	}
	return GenderUnknown
}

// NormalizeProductLine maps a raw product line code to its canonical label.
func NormalizeProductLine(raw string) ProductLine {
	if line, ok := productLineCodes[normalizeCode(raw)]; ok {
		return line
	}
	return ProductLineUnknown
}

// NormalizeCountry maps raw country codes to canonical country names. Values
// that are not known abbreviations are kept as trimmed free text; empty values
// become the Unknown sentinel.
func NormalizeCountry(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return UnknownCountry
	}
	if country, ok := countryCodes[strings.ToUpper(trimmed)]; ok {
		return country
	}
	return trimmed
}

func normalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
