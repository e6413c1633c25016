package gointegral

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// JSON Serialization
// ============================================================

type termJSON struct {
	Type        string  `json:"type"`
	Coefficient float64 `json:"coefficient"`
	Base        string  `json:"base"`
	Exponent    float64 `json:"exponent"`
}

func (t Term) toJSON() termJSON {
	return termJSON{Type: "term", Coefficient: t.coefficient, Base: t.base, Exponent: t.exponent}
}

func (t Term) MarshalJSON() ([]byte, error) { return json.Marshal(t.toJSON()) }

// UnmarshalJSON accepts the same objects as FromJSON.
func (t *Term) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("gointegral: term must be a JSON object")
	}
	decoded, err := FromJSON(raw)
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}

// MarshalYAML renders the term as a mapping for yaml encoders.
func (t Term) MarshalYAML() (interface{}, error) {
	return map[string]interface{}{
		"coefficient": t.coefficient,
		"base":        t.base,
		"exponent":    t.exponent,
	}, nil
}

func ToJSON(t Term) (string, error) {
	b, err := json.Marshal(t)
	return string(b), err
}

// FromJSON decodes a term from an already-unmarshalled JSON object, as found
// in tool-call params.
func FromJSON(data map[string]interface{}) (Term, error) {
	if typ, ok := data["type"]; ok && typ != "term" {
		return Term{}, fmt.Errorf("gointegral: unknown node type %v", typ)
	}
	c, ok := data["coefficient"].(float64)
	if !ok {
		return Term{}, fmt.Errorf("gointegral: term coefficient must be a number")
	}
	n, ok := data["exponent"].(float64)
	if !ok {
		return Term{}, fmt.Errorf("gointegral: term exponent must be a number")
	}
	base := Variable
	if v, ok := data["base"]; ok {
		s, isStr := v.(string)
		if !isStr || s == "" {
			return Term{}, fmt.Errorf("gointegral: term base must be a non-empty string")
		}
		base = s
	}
	return NewTerm(c, base, n), nil
}
