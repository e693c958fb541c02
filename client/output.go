package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PrintObject prints v in the configured output format.
func (ctx Context) PrintObject(v any) error {
	bz, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return ctx.PrintRaw(bz)
}

// PrintRaw prints a JSON document in the configured output format.
func (ctx Context) PrintRaw(bz []byte) error {
	var out []byte
	switch ctx.OutputFormat {
	case OutputFormatYAML:
		var err error
		if out, err = jsonToYAML(bz); err != nil {
			return err
		}
	default:
		var buf bytes.Buffer
		if err := json.Indent(&buf, bz, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		out = buf.Bytes()
	}

	_, err := fmt.Fprint(ctx.Output, string(out))
	return err
}

func jsonToYAML(bz []byte) ([]byte, error) {
	decoder := json.NewDecoder(bytes.NewReader(bz))
	decoder.UseNumber()

	var obj any
	if err := decoder.Decode(&obj); err != nil {
		return nil, err
	}

	return yaml.Marshal(normalizeNumbers(obj))
}

// normalizeNumbers turns json.Number into int64 or float64 so integers keep
// their plain form in yaml.
func normalizeNumbers(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, elem := range v {
			v[k] = normalizeNumbers(elem)
		}
		return v
	case []any:
		for i, elem := range v {
			v[i] = normalizeNumbers(elem)
		}
		return v
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return v
	}
}
