package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// ipoFields has IPO's layout without its methods.
type ipoFields IPO

func (i *IPO) fields() map[string]*string {
	return map[string]*string{
		"symbol":        &i.Symbol,
		"company_name":  &i.CompanyName,
		"exchange":      &i.Exchange,
		"price":         &i.Price,
		"shares":        &i.Shares,
		"expected_date": &i.ExpectedDate,
		"offer_amount":  &i.OfferAmount,
		"legal_firm":    &i.LegalFirm,
		"auditor":       &i.Auditor,
		"underwriter":   &i.Underwriter,
	}
}

// UnmarshalJSON accepts strings, numbers, booleans and null for every known
// field. Unknown keys are kept verbatim in Extra.
func (i *IPO) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = IPO{}
	fields := i.fields()
	for key, value := range raw {
		dst, ok := fields[key]
		if !ok {
			if i.Extra == nil {
				i.Extra = make(map[string]json.RawMessage)
			}
			i.Extra[key] = value
			continue
		}
		s, err := scalarText(value)
		if err != nil {
			return fmt.Errorf("ipo field %s: %w", key, err)
		}
		*dst = s
	}
	return nil
}

// MarshalJSON writes the known fields in declaration order followed by the
// extra keys, sorted. HTML characters are not escaped.
func (i IPO) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ipoFields(i)); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	if len(i.Extra) == 0 {
		return out, nil
	}

	known := new(IPO).fields()
	out = out[:len(out)-1]
	for _, key := range slices.Sorted(maps.Keys(i.Extra)) {
		if _, ok := known[key]; ok {
			continue
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		out = append(out, ',')
		out = append(out, name...)
		out = append(out, ':')
		out = append(out, i.Extra[key]...)
	}
	return append(out, '}'), nil
}

// scalarText renders a JSON value as the display string stored in IPO.
// Numbers keep their literal text; objects and arrays keep their JSON.
func scalarText(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return "", err
		}
		return compact.String(), nil
	}
}
