// file: internal/metadata/record.go
// version: 1.0.0
// guid: 3d9f1a2b-4c5e-6f70-8a9b-0c1d2e3f4a5b

package metadata

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Canonical field names used throughout tagforge.
const (
	FieldArtist     = "artist"
	FieldDate       = "date"
	FieldVenue      = "venue"
	FieldCity       = "city"
	FieldID         = "id"
	FieldSource     = "source"
	FieldFormat     = "format"
	FieldGenre      = "genre"
	FieldAdditional = "additional"
	FieldAdd        = "add" // mirror of additional

	// Derived fields available to scheme evaluation.
	FieldFolderName        = "foldername"
	FieldCurrentFolder     = "current_folder"
	FieldCurrentFolderName = "currentfoldername"
	FieldYear              = "year"
)

// canonicalFields are always present (as empty strings) in a fresh record, so
// template substitution stays total.
var canonicalFields = []string{
	FieldArtist, FieldDate, FieldVenue, FieldCity, FieldID,
	FieldSource, FieldFormat, FieldGenre, FieldAdditional, FieldAdd,
}

// Record maps metadata field names to values. A field holds either a single
// scalar string or an ordered list (format, source, additional). Absence is
// always represented as the empty string, never a missing key, for the
// canonical fields.
type Record struct {
	fields map[string][]string
}

// NewRecord returns a record with every canonical field present and empty.
func NewRecord() *Record {
	r := &Record{fields: make(map[string][]string, len(canonicalFields)+4)}
	for _, f := range canonicalFields {
		r.fields[f] = []string{""}
	}
	return r
}

func (r *Record) ensure() {
	if r.fields == nil {
		r.fields = make(map[string][]string)
	}
}

// Get returns the primary (first) value of a field, or "" when unset.
// Derived fields year and currentfoldername are computed on read.
func (r *Record) Get(field string) string {
	field = strings.ToLower(field)
	switch field {
	case FieldYear:
		if vs, ok := r.fields[FieldYear]; ok && len(vs) > 0 && vs[0] != "" {
			return vs[0]
		}
		if d := r.rawGet(FieldDate); len(d) >= 4 {
			return d[:4]
		}
		return ""
	case FieldCurrentFolderName:
		if vs, ok := r.fields[FieldCurrentFolderName]; ok && len(vs) > 0 && vs[0] != "" {
			return vs[0]
		}
		if cf := r.rawGet(FieldCurrentFolder); cf != "" {
			return path.Base(strings.TrimRight(filepath.ToSlash(cf), "/"))
		}
		return ""
	}
	return r.rawGet(field)
}

func (r *Record) rawGet(field string) string {
	if vs, ok := r.fields[field]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// GetList returns all non-empty values of a field. A scalar field yields a
// one-element list; an empty field yields nil.
func (r *Record) GetList(field string) []string {
	field = strings.ToLower(field)
	vs, ok := r.fields[field]
	if !ok {
		return nil
	}
	var out []string
	for _, v := range vs {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Join returns the field's values joined with ", ".
func (r *Record) Join(field string) string {
	return strings.Join(r.GetList(field), ", ")
}

// Set stores a scalar value, keeping additional and add in sync.
func (r *Record) Set(field, value string) {
	r.ensure()
	field = strings.ToLower(field)
	r.fields[field] = []string{value}
	if field == FieldAdditional {
		r.fields[FieldAdd] = []string{value}
	} else if field == FieldAdd {
		r.fields[FieldAdditional] = []string{value}
	}
}

// SetList stores an ordered multi-value field, keeping additional/add mirrored.
func (r *Record) SetList(field string, values []string) {
	r.ensure()
	field = strings.ToLower(field)
	if len(values) == 0 {
		values = []string{""}
	}
	vs := make([]string, len(values))
	copy(vs, values)
	r.fields[field] = vs
	if field == FieldAdditional {
		r.fields[FieldAdd] = vs
	} else if field == FieldAdd {
		r.fields[FieldAdditional] = vs
	}
}

// Has reports whether the field carries a non-empty value.
func (r *Record) Has(field string) bool {
	return r.Get(field) != ""
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	out := &Record{fields: make(map[string][]string, len(r.fields))}
	for k, vs := range r.fields {
		cp := make([]string, len(vs))
		copy(cp, vs)
		out.fields[k] = cp
	}
	return out
}

// Fields returns the sorted names of all fields present in the record.
func (r *Record) Fields() []string {
	names := make([]string, 0, len(r.fields))
	for k := range r.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// NonEmptyFields returns the sorted names of fields carrying a value.
func (r *Record) NonEmptyFields() []string {
	var out []string
	for _, f := range r.Fields() {
		if r.Get(f) != "" {
			out = append(out, f)
		}
	}
	return out
}

// Snapshot returns the non-empty fields as a flat map, multi-value fields
// joined with ", ".
func (r *Record) Snapshot() map[string]string {
	out := make(map[string]string)
	for _, f := range r.NonEmptyFields() {
		out[f] = r.Get(f)
		if vs := r.GetList(f); len(vs) > 1 {
			out[f] = r.Join(f)
		}
	}
	return out
}

// Apply copies every non-empty field of other into r, overwriting r's values.
// Used to layer user overrides on top of inferred metadata.
func (r *Record) Apply(other *Record) {
	if other == nil {
		return
	}
	r.ensure()
	for k, vs := range other.fields {
		nonEmpty := false
		for _, v := range vs {
			if v != "" {
				nonEmpty = true
				break
			}
		}
		if !nonEmpty {
			continue
		}
		if len(vs) > 1 {
			r.SetList(k, vs)
		} else {
			r.Set(k, vs[0])
		}
	}
}
