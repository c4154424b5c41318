// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import "strings"

// Region identifies the jurisdiction whose fee ordinance applies
type Region string

const (
	RegionSeoul Region = "seoul"
)

// String returns the string representation of the region
func (r Region) String() string {
	return string(r)
}

// IsValid checks if the region is a known region
func (r Region) IsValid() bool {
	return r == RegionSeoul
}

// ParseRegion accepts the canonical name or the Korean label.
func ParseRegion(s string) (Region, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seoul", "서울", "서울특별시":
		return RegionSeoul, true
	}
	return "", false
}

// DealType is the kind of transaction being brokered
type DealType string

const (
	// DealSale is an outright purchase (매매)
	DealSale DealType = "sale"

	// DealLeaseDeposit is a lump-sum deposit lease (전세)
	DealLeaseDeposit DealType = "lease-deposit"

	// DealLeaseWithRent is a deposit plus monthly rent lease (월세)
	DealLeaseWithRent DealType = "lease-with-rent"
)

// AllDealTypes lists deal types in display order
var AllDealTypes = []DealType{DealSale, DealLeaseDeposit, DealLeaseWithRent}

var dealLabels = map[DealType]string{
	DealSale:          "매매",
	DealLeaseDeposit:  "전세",
	DealLeaseWithRent: "월세",
}

// String returns the string representation of the deal type
func (d DealType) String() string {
	return string(d)
}

// Label returns the Korean form label
func (d DealType) Label() string {
	return dealLabels[d]
}

// IsValid checks if the deal type is known
func (d DealType) IsValid() bool {
	_, ok := dealLabels[d]
	return ok
}

// IsRent reports whether the deal is priced from a deposit and monthly rent pair
func (d DealType) IsRent() bool {
	return d == DealLeaseWithRent
}

// ParseDealType accepts the canonical name or the Korean label.
func ParseDealType(s string) (DealType, bool) {
	s = strings.TrimSpace(s)
	for d, label := range dealLabels {
		if s == string(d) || s == label {
			return d, true
		}
	}
	return "", false
}

// PropertyType is the user-facing property choice on the calculator form
type PropertyType string

const (
	PropertyHouse        PropertyType = "house"
	PropertyOfficetel    PropertyType = "officetel"
	PropertyPreSaleRight PropertyType = "pre-sale-right"
	PropertyOther        PropertyType = "other"
)

// AllPropertyTypes lists property types in display order
var AllPropertyTypes = []PropertyType{PropertyHouse, PropertyOfficetel, PropertyPreSaleRight, PropertyOther}

var propertyLabels = map[PropertyType]string{
	PropertyHouse:        "주택",
	PropertyOfficetel:    "오피스텔",
	PropertyPreSaleRight: "분양권",
	PropertyOther:        "기타",
}

// String returns the string representation of the property type
func (p PropertyType) String() string {
	return string(p)
}

// Label returns the Korean form label
func (p PropertyType) Label() string {
	return propertyLabels[p]
}

// IsValid checks if the property type is one of the four form choices
func (p PropertyType) IsValid() bool {
	_, ok := propertyLabels[p]
	return ok
}

// ParsePropertyType accepts the canonical name or the Korean label. Unknown
// input is returned unchanged so the normalizer can apply its default.
func ParsePropertyType(s string) PropertyType {
	s = strings.TrimSpace(s)
	for p, label := range propertyLabels {
		if s == label {
			return p
		}
	}
	return PropertyType(s)
}

// PropertyCategory is the schedule-side classification of a property
type PropertyCategory string

const (
	// CategoryHouse covers housing, including pre-sale rights
	CategoryHouse PropertyCategory = "house"

	// CategoryOfficetel is a residential-use officetel
	CategoryOfficetel PropertyCategory = "officetel-residential"

	// CategoryNonHousing covers land, commercial and everything else
	CategoryNonHousing PropertyCategory = "non-housing"
)

// String returns the string representation of the category
func (c PropertyCategory) String() string {
	return string(c)
}

// IsValid checks if the category is known
func (c PropertyCategory) IsValid() bool {
	switch c {
	case CategoryHouse, CategoryOfficetel, CategoryNonHousing:
		return true
	default:
		return false
	}
}
