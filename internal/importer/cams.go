package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nivesh-dev/nivesh/internal/model"
)

// CAMSFactory builds parsers for CAMS consolidated statement CSV exports.
type CAMSFactory struct{}

// Info implements Factory.
func (CAMSFactory) Info() Info {
	return Info{
		Key:         "cams",
		Name:        "CAMS CSV",
		Description: "CAMS consolidated account statement, CSV export",
	}
}

// CanParse implements Factory. CAMS exports are named like CAMS_*.csv.
func (CAMSFactory) CanParse(filename string) bool {
	base := strings.ToLower(filepath.Base(filename))
	return strings.HasPrefix(base, "cams") && strings.HasSuffix(base, ".csv")
}

// New implements Factory.
func (CAMSFactory) New() Parser { return &camsParser{} }

const (
	camsDateFormat = "02-Jan-2006"
	camsNumFields  = 11

	camsColAccount     = 0
	camsColInstitution = 1
	camsColSecKey      = 2
	camsColSecName     = 3
	camsColSecType     = 4
	camsColSecCategory = 5
	camsColDate        = 6
	camsColType        = 7
	camsColDescription = 8
	camsColAmount      = 9
	camsColUnits       = 10
)

type camsParser struct{}

// Parse reads a CAMS CSV and returns the statement contents. Accounts and
// securities are deduplicated across rows, preserving first appearance.
func (p *camsParser) Parse(r io.Reader) (*Statement, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = camsNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading cams CSV: %w", err)
	}
	if len(records) <= 1 {
		return &Statement{}, nil
	}

	st := &Statement{}
	seenAccounts := map[string]bool{}
	seenSecurities := map[string]bool{}

	for i, rec := range records[1:] {
		pt, sec, err := parseCAMSRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		acctKey := pt.AccountName + "\x00" + pt.Institution
		if !seenAccounts[acctKey] {
			seenAccounts[acctKey] = true
			st.Accounts = append(st.Accounts, model.Account{
				Name: pt.AccountName, Institution: pt.Institution,
			})
		}
		if !seenSecurities[sec.Key] {
			seenSecurities[sec.Key] = true
			st.Securities = append(st.Securities, sec)
		}
		st.Transactions = append(st.Transactions, pt)
	}
	return st, nil
}

func parseCAMSRow(rec []string) (ParsedTransaction, model.Security, error) {
	date, err := time.Parse(camsDateFormat, rec[camsColDate])
	if err != nil {
		return ParsedTransaction{}, model.Security{}, fmt.Errorf("parsing date %q: %w", rec[camsColDate], err)
	}

	amount, err := decimal.NewFromString(rec[camsColAmount])
	if err != nil {
		return ParsedTransaction{}, model.Security{}, fmt.Errorf("parsing amount %q: %w", rec[camsColAmount], err)
	}

	units, err := decimal.NewFromString(rec[camsColUnits])
	if err != nil {
		return ParsedTransaction{}, model.Security{}, fmt.Errorf("parsing units %q: %w", rec[camsColUnits], err)
	}

	txType, err := parseCAMSType(rec[camsColType])
	if err != nil {
		return ParsedTransaction{}, model.Security{}, err
	}

	sec := model.Security{
		Key:      rec[camsColSecKey],
		Name:     rec[camsColSecName],
		Type:     model.SecurityType(strings.ToLower(rec[camsColSecType])),
		Category: model.SecurityCategory(strings.ToLower(rec[camsColSecCategory])),
	}
	if sec.Key == "" {
		return ParsedTransaction{}, model.Security{}, fmt.Errorf("missing security key")
	}

	pt := ParsedTransaction{
		Tx: model.Transaction{
			Date:        date,
			Type:        txType,
			Description: rec[camsColDescription],
			Amount:      amount,
			Units:       units,
			SecurityKey: sec.Key,
		},
		AccountName: rec[camsColAccount],
		Institution: rec[camsColInstitution],
	}
	return pt, sec, nil
}

// parseCAMSType maps the statement's transaction labels onto the two
// directions the ledger tracks.
func parseCAMSType(s string) (model.TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "purchase", "sip purchase", "switch in":
		return model.TransactionPurchase, nil
	case "redemption", "sale", "switch out":
		return model.TransactionSale, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}
