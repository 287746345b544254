package query

// Field is the closed set of queryable field kinds. Declaration order is the
// canonical composition order: when a query is AND-combined across kinds,
// groups appear in this order. AND is commutative, so the order never
// changes results; it only fixes one normal form.
type Field int

const (
	FieldDate Field = iota
	FieldAmount
	FieldType
	FieldDescription
	FieldAccount
	FieldSecurity

	// FieldDefault marks a bare term before classification resolves it to a
	// concrete kind for the active context.
	FieldDefault
)

func (f Field) String() string {
	switch f {
	case FieldDate:
		return "date"
	case FieldAmount:
		return "amount"
	case FieldType:
		return "type"
	case FieldDescription:
		return "description"
	case FieldAccount:
		return "account"
	case FieldSecurity:
		return "security"
	case FieldDefault:
		return "default"
	}
	return "unknown"
}

// fieldOrder lists the concrete kinds in canonical composition order.
var fieldOrder = [...]Field{FieldDate, FieldAmount, FieldType, FieldDescription, FieldAccount, FieldSecurity}

// Context is the record kind a query runs against. It bounds which field
// prefixes are legal and decides what a bare term means.
type Context int

const (
	Transactions Context = iota
	Securities
	Accounts
	Prices
)

func (c Context) String() string {
	switch c {
	case Transactions:
		return "transactions"
	case Securities:
		return "securities"
	case Accounts:
		return "accounts"
	case Prices:
		return "prices"
	}
	return "unknown"
}

var legalFields = map[Context][]Field{
	Transactions: {FieldDate, FieldAmount, FieldType, FieldDescription, FieldAccount, FieldSecurity},
	Securities:   {FieldType, FieldSecurity},
	Accounts:     {FieldAccount},
	Prices:       {FieldDate, FieldSecurity},
}

// Allows reports whether field prefix f may be used against context c.
func (c Context) Allows(f Field) bool {
	for _, legal := range legalFields[c] {
		if legal == f {
			return true
		}
	}
	return false
}

// DefaultField returns the concrete kind a bare term resolves to. Accounts
// queries match account fields; everything else matches security fields.
func (c Context) DefaultField() Field {
	if c == Accounts {
		return FieldAccount
	}
	return FieldSecurity
}
