package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// PactInt decodes a Pact integer, which arrives either as a plain JSON
// number or wrapped as {"int": n} where n may itself be a number or a
// decimal string.
type PactInt int64

func (p *PactInt) UnmarshalJSON(data []byte) error {
	var direct json.Number
	if err := json.Unmarshal(data, &direct); err == nil {
		v, err := direct.Int64()
		if err != nil {
			f, ferr := direct.Float64()
			if ferr != nil {
				return ferr
			}
			v = int64(f)
		}
		*p = PactInt(v)
		return nil
	}

	var wrapped struct {
		Int json.RawMessage `json:"int"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil || wrapped.Int == nil {
		return fmt.Errorf("pact int: cannot decode %s", data)
	}

	var num json.Number
	if err := json.Unmarshal(wrapped.Int, &num); err == nil {
		v, err := num.Int64()
		if err != nil {
			return err
		}
		*p = PactInt(v)
		return nil
	}

	var str string
	if err := json.Unmarshal(wrapped.Int, &str); err != nil {
		return fmt.Errorf("pact int: cannot decode %s", data)
	}
	v, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return err
	}
	*p = PactInt(v)
	return nil
}

func (p PactInt) Int() int     { return int(p) }
func (p PactInt) Int64() int64 { return int64(p) }

// pactTimeLayouts are the encodings Pact uses for time values.
var pactTimeLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999Z07:00",
	"2006-01-02 15:04:05 MST",
}

// PactTime decodes a Pact time, which arrives either as a bare string
// or wrapped as {"time": "..."} or {"timep": "..."}.
type PactTime struct {
	time.Time
}

func (p *PactTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		var wrapped struct {
			Time  string `json:"time"`
			Timep string `json:"timep"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return fmt.Errorf("pact time: cannot decode %s", data)
		}
		raw = wrapped.Time
		if raw == "" {
			raw = wrapped.Timep
		}
	}

	for _, layout := range pactTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			p.Time = t
			return nil
		}
	}
	return fmt.Errorf("pact time: unrecognized format %q", raw)
}

// PactDecimal decodes a Pact decimal, which arrives as a JSON number or
// wrapped as {"decimal": "..."}.
type PactDecimal float64

func (p *PactDecimal) UnmarshalJSON(data []byte) error {
	var direct float64
	if err := json.Unmarshal(data, &direct); err == nil {
		*p = PactDecimal(direct)
		return nil
	}

	var wrapped struct {
		Decimal string `json:"decimal"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil || wrapped.Decimal == "" {
		return fmt.Errorf("pact decimal: cannot decode %s", data)
	}
	v, err := strconv.ParseFloat(wrapped.Decimal, 64)
	if err != nil {
		return err
	}
	*p = PactDecimal(v)
	return nil
}

func (p PactDecimal) Float64() float64 { return float64(p) }
