package wizard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"digibook/models"
)

// Record is the owned state of one booking wizard.
type Record struct {
	Service        string                  `json:"service"`
	ServiceDetails map[string]string       `json:"serviceDetails"`
	Files          []models.FileDescriptor `json:"files"`
	ContactInfo    models.ContactInfo      `json:"contactInfo"`
}

// NewRecord returns an empty record with the default contact channel.
func NewRecord() *Record {
	return &Record{
		ServiceDetails: map[string]string{},
		Files:          []models.FileDescriptor{},
		ContactInfo:    models.ContactInfo{PreferredContact: ChannelWhatsApp},
	}
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	out := &Record{
		Service:        r.Service,
		ServiceDetails: make(map[string]string, len(r.ServiceDetails)),
		Files:          make([]models.FileDescriptor, len(r.Files)),
		ContactInfo:    r.ContactInfo,
	}
	for k, v := range r.ServiceDetails {
		out.ServiceDetails[k] = v
	}
	for i, f := range r.Files {
		if f.IsTransparent != nil {
			t := *f.IsTransparent
			f.IsTransparent = &t
		}
		out.Files[i] = f
	}
	return out
}

// UnmarshalJSON accepts files stored either as an array or as an object keyed by position,
// and tolerates non-string detail values written by older clients.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Service        string             `json:"service"`
		ServiceDetails json.RawMessage    `json:"serviceDetails"`
		Files          json.RawMessage    `json:"files"`
		ContactInfo    models.ContactInfo `json:"contactInfo"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	details, err := decodeDetailMap(raw.ServiceDetails)
	if err != nil {
		return fmt.Errorf("serviceDetails: %w", err)
	}
	files, err := decodeFiles(raw.Files)
	if err != nil {
		return fmt.Errorf("files: %w", err)
	}

	*r = Record{
		Service:        raw.Service,
		ServiceDetails: details,
		Files:          files,
		ContactInfo:    raw.ContactInfo,
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeDetailMap(raw json.RawMessage) (map[string]string, error) {
	out := map[string]string{}
	if isNull(raw) {
		return out, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var values map[string]interface{}
	if err := dec.Decode(&values); err != nil {
		return nil, err
	}
	for k, v := range values {
		switch val := v.(type) {
		case nil:
		case string:
			out[k] = val
		case json.Number:
			out[k] = val.String()
		case bool:
			out[k] = strconv.FormatBool(val)
		default:
			return nil, fmt.Errorf("field %q has unsupported value type %T", k, v)
		}
	}
	return out, nil
}

func decodeFiles(raw json.RawMessage) ([]models.FileDescriptor, error) {
	files := []models.FileDescriptor{}
	if isNull(raw) {
		return files, nil
	}

	switch bytes.TrimSpace(raw)[0] {
	case '[':
		if err := json.Unmarshal(raw, &files); err != nil {
			return nil, err
		}
		if files == nil {
			files = []models.FileDescriptor{}
		}
		return files, nil
	case '{':
		var keyed map[string]models.FileDescriptor
		if err := json.Unmarshal(raw, &keyed); err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })
		for _, k := range keys {
			files = append(files, keyed[k])
		}
		return files, nil
	default:
		return nil, fmt.Errorf("expected array or object, got %s", string(raw))
	}
}

// lessKey orders numeric keys numerically ahead of any other keys.
func lessKey(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return ai < bi
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}
