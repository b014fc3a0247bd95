package jsonapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

type requestDocument struct {
	Data *struct {
		Type       string                     `json:"type"`
		ID         string                     `json:"id"`
		Attributes map[string]json.RawMessage `json:"attributes"`
	} `json:"data"`
}

// DecodeAttributes reads a single-resource document and returns its
// attributes as form values: strings as-is, numbers in their literal form,
// booleans as "true"/"false" and null as "". wantID is checked when set.
// Failures are returned as an Error ready to be written back.
func DecodeAttributes(body io.Reader, wantType, wantID string) (map[string]string, error) {
	var doc requestDocument
	if err := json.NewDecoder(body).Decode(&doc); err != nil {
		return nil, BadRequest("request body is not valid JSON: " + err.Error())
	}
	if doc.Data == nil {
		return nil, BadRequest("request body must contain a data object").At("/data")
	}
	if doc.Data.Type != wantType {
		return nil, Conflict(fmt.Sprintf("resource type must be %q", wantType)).At("/data/type")
	}
	if wantID != "" && doc.Data.ID != "" && doc.Data.ID != wantID {
		return nil, Conflict("resource id does not match the URL").At("/data/id")
	}

	out := make(map[string]string, len(doc.Data.Attributes))
	for name, raw := range doc.Data.Attributes {
		v, err := scalar(raw)
		if err != nil {
			return nil, BadRequest(err.Error()).At("/data/attributes/" + name)
		}
		out[name] = v
	}
	return out, nil
}

func scalar(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("attribute must be a string, number, boolean or null")
	}
}
