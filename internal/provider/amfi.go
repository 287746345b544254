package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nivesh-dev/nivesh/internal/model"
)

// amfiBaseURL is the public mutual-fund NAV API fronting AMFI data.
const amfiBaseURL = "https://api.mfapi.in/mf"

// amfiDateFormat is the DD-MM-YYYY format the API publishes NAV dates in.
const amfiDateFormat = "02-01-2006"

// AMFIFactory builds providers for Indian mutual-fund NAVs.
type AMFIFactory struct{}

// Info implements Factory.
func (AMFIFactory) Info() Info {
	return Info{
		Key:         "amfi",
		Name:        "AMFI",
		Description: "Mutual fund NAVs from AMFI via api.mfapi.in",
	}
}

// New implements Factory.
func (AMFIFactory) New() Provider {
	return &AMFIProvider{
		baseURL: amfiBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// AMFIProvider fetches mutual fund NAVs keyed by 6-digit AMFI scheme codes.
type AMFIProvider struct {
	baseURL string
	client  *http.Client
}

// Priority implements Provider. Only mutual funds whose key is a 6-digit
// scheme code are served.
func (p *AMFIProvider) Priority(sec model.Security) (int, bool) {
	if sec.Type != model.SecurityTypeMutualFund {
		return 0, false
	}
	if !isSchemeCode(sec.Key) {
		return 0, false
	}
	return 10, true
}

func isSchemeCode(key string) bool {
	if len(key) != 6 {
		return false
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// amfiResponse is the wire shape of api.mfapi.in responses.
type amfiResponse struct {
	Data []struct {
		Date string `json:"date"`
		NAV  string `json:"nav"`
	} `json:"data"`
}

// Latest implements Provider.
func (p *AMFIProvider) Latest(ctx context.Context, sec model.Security) (model.Price, error) {
	prices, err := p.fetch(ctx, sec, p.baseURL+"/"+sec.Key+"/latest")
	if err != nil {
		return model.Price{}, err
	}
	if len(prices) == 0 {
		return model.Price{}, fmt.Errorf("amfi: no price data for %s", sec.Key)
	}
	return prices[0], nil
}

// Historical implements Provider. The API returns the full NAV history;
// rows outside [from, to] are dropped.
func (p *AMFIProvider) Historical(ctx context.Context, sec model.Security, from, to time.Time) ([]model.Price, error) {
	u := p.baseURL + "/" + sec.Key + "?" + url.Values{
		"startDate": {from.Format("2006-01-02")},
		"endDate":   {to.Format("2006-01-02")},
	}.Encode()

	prices, err := p.fetch(ctx, sec, u)
	if err != nil {
		return nil, err
	}

	var out []model.Price
	for _, price := range prices {
		if price.Date.Before(from) || price.Date.After(to) {
			continue
		}
		out = append(out, price)
	}
	return out, nil
}

func (p *AMFIProvider) fetch(ctx context.Context, sec model.Security, endpoint string) ([]model.Price, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("amfi: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amfi: fetching %s: %w", sec.Key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("amfi: unknown scheme code %s", sec.Key)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("amfi: fetching %s: unexpected status %s", sec.Key, resp.Status)
	}

	var body amfiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("amfi: decoding response for %s: %w", sec.Key, err)
	}

	prices := make([]model.Price, 0, len(body.Data))
	for _, row := range body.Data {
		date, err := time.Parse(amfiDateFormat, row.Date)
		if err != nil {
			return nil, fmt.Errorf("amfi: parsing date %q: %w", row.Date, err)
		}
		nav, err := decimal.NewFromString(row.NAV)
		if err != nil {
			return nil, fmt.Errorf("amfi: parsing nav %q: %w", row.NAV, err)
		}
		// NAV feeds publish one value per day.
		prices = append(prices, model.Price{
			SecurityKey: sec.Key,
			Date:        date,
			Open:        nav,
			High:        nav,
			Low:         nav,
			Close:       nav,
		})
	}
	return prices, nil
}
