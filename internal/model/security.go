package model

// SecurityType classifies the instrument kind of a security.
type SecurityType string

const (
	SecurityTypeStock      SecurityType = "stock"
	SecurityTypeBond       SecurityType = "bond"
	SecurityTypeETF        SecurityType = "etf"
	SecurityTypeMutualFund SecurityType = "mutual_fund"
	SecurityTypeOther      SecurityType = "other"
)

// SecurityCategory classifies the asset class of a security.
type SecurityCategory string

const (
	CategoryEquity    SecurityCategory = "equity"
	CategoryDebt      SecurityCategory = "debt"
	CategoryCommodity SecurityCategory = "commodity"
	CategoryOther     SecurityCategory = "other"
)

// Security represents a tradable instrument. Key is the user-facing
// identifier (ISIN, ticker, or a 6-digit AMFI scheme code for mutual funds).
type Security struct {
	Key      string
	Name     string
	Type     SecurityType
	Category SecurityCategory
}
