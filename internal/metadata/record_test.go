// file: internal/metadata/record_test.go
// version: 1.0.0
// guid: 8a9b0c1d-2e3f-4a5b-6c7d-8e9f0a1b2c3d

package metadata

import "testing"

func TestRecordCanonicalFieldsPresent(t *testing.T) {
	r := NewRecord()
	for _, f := range canonicalFields {
		if _, ok := r.fields[f]; !ok {
			t.Errorf("canonical field %q missing from fresh record", f)
		}
		if r.Get(f) != "" {
			t.Errorf("canonical field %q not empty in fresh record", f)
		}
	}
}

func TestRecordYearDerivedFromDate(t *testing.T) {
	r := NewRecord()
	r.Set(FieldDate, "1995-12-31")
	if got := r.Get(FieldYear); got != "1995" {
		t.Errorf("year = %q, want 1995", got)
	}

	// An explicit year wins over the derived one.
	r.Set(FieldYear, "2001")
	if got := r.Get(FieldYear); got != "2001" {
		t.Errorf("year = %q, want 2001", got)
	}

	empty := NewRecord()
	if got := empty.Get(FieldYear); got != "" {
		t.Errorf("year on empty record = %q, want empty", got)
	}
}

func TestRecordCurrentFolderName(t *testing.T) {
	r := NewRecord()
	r.Set(FieldCurrentFolder, "/inbox/1995-12-31 - MSG/")
	if got := r.Get(FieldCurrentFolderName); got != "1995-12-31 - MSG" {
		t.Errorf("currentfoldername = %q", got)
	}
}

func TestRecordAdditionalAddMirror(t *testing.T) {
	r := NewRecord()
	r.Set(FieldAdditional, "Remastered")
	if got := r.Get(FieldAdd); got != "Remastered" {
		t.Errorf("add = %q, want Remastered", got)
	}
	r.SetList(FieldAdd, []string{"NYE95", "Remastered"})
	if got := r.Join(FieldAdditional); got != "NYE95, Remastered" {
		t.Errorf("additional = %q", got)
	}
}

func TestRecordGetListAndJoin(t *testing.T) {
	r := NewRecord()
	r.SetList(FieldFormat, []string{"FLAC16", "", "MP3"})
	got := r.GetList(FieldFormat)
	if len(got) != 2 || got[0] != "FLAC16" || got[1] != "MP3" {
		t.Errorf("GetList = %v", got)
	}
	if r.Get(FieldFormat) != "FLAC16" {
		t.Errorf("Get = %q, want first value", r.Get(FieldFormat))
	}
	if r.Join(FieldFormat) != "FLAC16, MP3" {
		t.Errorf("Join = %q", r.Join(FieldFormat))
	}
}

func TestRecordFieldNamesCaseInsensitive(t *testing.T) {
	r := NewRecord()
	r.Set("Artist", "Phish")
	if got := r.Get("ARTIST"); got != "Phish" {
		t.Errorf("Get(ARTIST) = %q", got)
	}
}

func TestRecordApplyOverwritesNonEmptyOnly(t *testing.T) {
	base := NewRecord()
	base.Set(FieldArtist, "Phish")
	base.Set(FieldVenue, "Madison Square Garden")

	overrides := NewRecord()
	overrides.Set(FieldArtist, "Grateful Dead")
	// venue left empty in overrides; must survive in base.

	base.Apply(overrides)
	if got := base.Get(FieldArtist); got != "Grateful Dead" {
		t.Errorf("artist = %q", got)
	}
	if got := base.Get(FieldVenue); got != "Madison Square Garden" {
		t.Errorf("venue = %q", got)
	}
}

func TestRecordCloneIsDeep(t *testing.T) {
	r := NewRecord()
	r.SetList(FieldSource, []string{"SBD", "AUD"})
	c := r.Clone()
	c.Set(FieldSource, "FM")
	if got := r.Get(FieldSource); got != "SBD" {
		t.Errorf("original mutated: source = %q", got)
	}
}

func TestRecordSnapshot(t *testing.T) {
	r := NewRecord()
	r.Set(FieldArtist, "Phish")
	r.SetList(FieldFormat, []string{"FLAC16", "MP3"})

	snap := r.Snapshot()
	if snap[FieldArtist] != "Phish" {
		t.Errorf("snapshot artist = %q", snap[FieldArtist])
	}
	if snap[FieldFormat] != "FLAC16, MP3" {
		t.Errorf("snapshot format = %q", snap[FieldFormat])
	}
	if _, ok := snap[FieldVenue]; ok {
		t.Error("snapshot contains empty venue")
	}
}
