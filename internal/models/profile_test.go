package models

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestProfile_Experience(t *testing.T) {
	p := &Profile{}

	older := p.AddExperience(Experience{Title: "Intern", Company: "Acme", From: "2018-01-01"})
	newer := p.AddExperience(Experience{Title: "Engineer", Company: "Acme", From: "2020-01-01"})

	if p.Experience[0].ID != newer.ID || p.Experience[1].ID != older.ID {
		t.Fatalf("Experience = %+v, want most recent first", p.Experience)
	}
	want := []Experience{
		{Title: "Engineer", Company: "Acme", From: "2020-01-01"},
		{Title: "Intern", Company: "Acme", From: "2018-01-01"},
	}
	if diff := cmp.Diff(want, p.Experience, cmpopts.IgnoreFields(Experience{}, "ID")); diff != "" {
		t.Errorf("Experience mismatch (-want +got):\n%s", diff)
	}

	if err := p.RemoveExperience("nope"); !errors.Is(err, ErrExperienceMissing) {
		t.Errorf("RemoveExperience(nope) error = %v, want ErrExperienceMissing", err)
	}
	if err := p.RemoveExperience(older.ID); err != nil {
		t.Fatalf("RemoveExperience() error = %v", err)
	}
	if len(p.Experience) != 1 || p.Experience[0].ID != newer.ID {
		t.Errorf("Experience = %+v, want only newer", p.Experience)
	}
}

func TestProfile_Education(t *testing.T) {
	p := &Profile{}

	e := p.AddEducation(Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2014-09-01"})
	if e.ID == "" {
		t.Fatal("AddEducation() returned empty id")
	}
	if err := p.RemoveEducation(e.ID); err != nil {
		t.Fatalf("RemoveEducation() error = %v", err)
	}
	if err := p.RemoveEducation(e.ID); !errors.Is(err, ErrEducationMissing) {
		t.Errorf("second RemoveEducation() error = %v, want ErrEducationMissing", err)
	}
	if len(p.Education) != 0 {
		t.Errorf("len(Education) = %d, want 0", len(p.Education))
	}
}
