package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	ml "github.com/dmitrijs2005/memoradmin/internal/client/multilingual"
)

// Record is the client-side copy of one backend record. Translatable fields
// are decoded into ml.Field; everything else is kept as raw JSON so that
// attributes the client does not know about survive an update unchanged.
type Record struct {
	ID         string
	Fields     map[string]ml.Field
	Attributes map[string]json.RawMessage
}

// Pagination is the cursor returned with every list response.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// Page is one page of records of an entity.
type Page struct {
	Items      []Record
	Pagination Pagination
}

// DecodeRecord decodes a backend object according to d.
func DecodeRecord(d *Descriptor, data []byte) (Record, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, fmt.Errorf("decode %s record: %w", d.Name, err)
	}

	rec := Record{
		Fields:     make(map[string]ml.Field, len(d.Fields)),
		Attributes: make(map[string]json.RawMessage, len(raw)),
	}

	for _, key := range []string{"_id", "id"} {
		if v, ok := raw[key]; ok {
			if err := json.Unmarshal(v, &rec.ID); err != nil {
				// numeric ids
				rec.ID = string(bytes.Trim(v, `"`))
			}
			delete(raw, key)
			break
		}
	}

	for _, f := range d.Fields {
		v, ok := raw[f.Name]
		if !ok {
			continue
		}
		delete(raw, f.Name)
		var field ml.Field
		if err := json.Unmarshal(v, &field); err != nil {
			// A field in an unexpected shape degrades to empty.
			field = ml.Field{}
		}
		rec.Fields[f.Name] = field
	}

	for k, v := range raw {
		rec.Attributes[k] = v
	}
	return rec, nil
}

// Field returns the translatable field name; absent fields are nil.
func (r *Record) Field(name string) *ml.Field {
	f, ok := r.Fields[name]
	if !ok {
		return nil
	}
	return &f
}

// Display returns the value of field name for locale l with English fallback.
func (r *Record) Display(name string, l ml.Locale) string {
	return ml.Display(r.Field(name), l)
}

// Attribute returns the attribute as text: JSON strings are unquoted, other
// values are returned verbatim.
func (r *Record) Attribute(name string) string {
	return attributeText(r.Attributes[name])
}

// Deleted reports the soft-delete flag.
func (r *Record) Deleted() bool {
	var b bool
	_ = json.Unmarshal(r.Attributes["isDeleted"], &b)
	return b
}

// Body returns the JSON object sent to the backend. The id is included under
// "id" only when withID is set.
func (r *Record) Body(withID bool) map[string]any {
	body := make(map[string]any, len(r.Fields)+len(r.Attributes)+1)
	for k, v := range r.Attributes {
		body[k] = v
	}
	for k, v := range r.Fields {
		body[k] = v
	}
	if withID {
		body["id"] = r.ID
	}
	return body
}

func attributeText(v json.RawMessage) string {
	if len(v) == 0 || string(v) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}
