// Package validate gates raw API payloads before transformation.
//
// Payloads arrive as the loosely-typed values produced by encoding/json
// (map[string]any, []any, float64, string, nil). Each check is a structural
// predicate: it never panics, never mutates the payload, and logs the first
// violated rule so a rejected response can be diagnosed. Callers must
// discard the payload when a check returns false.
package validate

import "github.com/sirupsen/logrus"

var log = logrus.WithField("component", "validate")

// Kind selects which response shape to check.
type Kind string

const (
	KindBids   Kind = "bids"
	KindEnergy Kind = "energy"
	KindDates  Kind = "dates"
)

// Response reports whether payload has the structure required for kind.
func Response(payload any, kind Kind) bool {
	switch kind {
	case KindBids:
		return validBids(payload)
	case KindEnergy:
		return validEnergy(payload)
	case KindDates:
		return validDates(payload)
	default:
		log.Errorf("unknown response kind %q", kind)
		return false
	}
}

// validBids requires an object with a "data" array whose elements are
// arrays of numeric-or-string scalars.
func validBids(payload any) bool {
	obj, ok := payload.(map[string]any)
	if !ok {
		log.Error("bids: payload is not an object")
		return false
	}
	rows, ok := obj["data"].([]any)
	if !ok {
		log.Error("bids: data field missing or not an array")
		return false
	}
	for i, raw := range rows {
		row, ok := raw.([]any)
		if !ok {
			log.Errorf("bids: data[%d] is not an array", i)
			return false
		}
		for j, v := range row {
			switch v.(type) {
			case float64, string:
			default:
				log.Errorf("bids: data[%d][%d] is neither number nor string", i, j)
				return false
			}
		}
	}
	return true
}

// validEnergy requires a non-null "carbonRate" object of numeric rates and
// a "data" array of rows shaped [timestamp|null, number|null...].
func validEnergy(payload any) bool {
	obj, ok := payload.(map[string]any)
	if !ok {
		log.Error("energy: payload is not an object")
		return false
	}
	rates, ok := obj["carbonRate"].(map[string]any)
	if !ok {
		log.Error("energy: carbonRate field missing or not an object")
		return false
	}
	for day, v := range rates {
		if _, ok := v.(float64); !ok {
			log.Errorf("energy: carbonRate[%q] is not a number", day)
			return false
		}
	}
	rows, ok := obj["data"].([]any)
	if !ok {
		log.Error("energy: data field missing or not an array")
		return false
	}
	for i, raw := range rows {
		row, ok := raw.([]any)
		if !ok {
			log.Errorf("energy: data[%d] is not an array", i)
			return false
		}
		for j, v := range row {
			if v == nil {
				continue
			}
			if j == 0 {
				if _, ok := v.(string); !ok {
					log.Errorf("energy: data[%d][0] is neither string nor null", i)
					return false
				}
				continue
			}
			if _, ok := v.(float64); !ok {
				log.Errorf("energy: data[%d][%d] is neither number nor null", i, j)
				return false
			}
		}
	}
	return true
}

// validDates requires an object whose every value is an array. The day
// values inside are deliberately not inspected here; the transformer
// coerces them.
func validDates(payload any) bool {
	obj, ok := payload.(map[string]any)
	if !ok {
		log.Error("dates: payload is not an object")
		return false
	}
	for key, v := range obj {
		if _, ok := v.([]any); !ok {
			log.Errorf("dates: value for %q is not an array", key)
			return false
		}
	}
	return true
}
