package collection

import "encoding/json"

// Environment is a resolved environment document.
type Environment struct {
	Name   string
	Values []EnvValue
}

// EnvValue is one key/value entry from an environment document.
type EnvValue struct {
	Key   string
	Value string
}

type rawEnvironment struct {
	Name   string     `json:"name"`
	Values []rawValue `json:"values"`
}

type rawValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ParseEnvironment resolves an environment document. An absent document
// (nil, empty, or the JSON null literal) resolves to a nil Environment,
// which is a valid state: the environment is always optional.
func ParseEnvironment(data []byte) (*Environment, error) {
	if IsAbsent(data) {
		return nil, nil
	}
	var raw rawEnvironment
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	env := &Environment{Name: raw.Name}
	for _, v := range raw.Values {
		env.Values = append(env.Values, EnvValue{Key: v.Key, Value: v.Value})
	}
	return env, nil
}

// Map flattens the value list into a key/value mapping. Entries missing a
// key or a value are skipped; the last duplicate key wins. A nil
// environment maps to nil, a present one always to a non-nil map.
func (e *Environment) Map() map[string]string {
	if e == nil {
		return nil
	}
	m := make(map[string]string, len(e.Values))
	for _, v := range e.Values {
		if v.Key == "" || v.Value == "" {
			continue
		}
		m[v.Key] = v.Value
	}
	return m
}
