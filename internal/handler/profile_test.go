package handler

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/lijie8778708/DevConnector/internal/models"
)

func TestCheckPeriod(t *testing.T) {
	testCases := []struct {
		name             string
		from, to         string
		current          bool
		wantFrom, wantTo string
		wantErrFields    []string
	}{
		{name: "plain", from: "2020-01-01", to: "2021-01-01", wantFrom: "2020-01-01", wantTo: "2021-01-01"},
		{name: "open ended", from: "2020-01-01", wantFrom: "2020-01-01"},
		{name: "current drops to", from: "2020-01-01", to: "2021-01-01", current: true, wantFrom: "2020-01-01"},
		{name: "slashes", from: "2020/01/01", wantFrom: "2020-01-01"},
		{name: "bad from", from: "someday", wantErrFields: []string{"from"}},
		{name: "bad to", from: "2020-01-01", to: "later", wantErrFields: []string{"to"}},
		{name: "to before from", from: "2020-01-01", to: "2019-01-01", wantErrFields: []string{"to"}},
	}

	for _, tc := range testCases {
		from, to, errs := checkPeriod(tc.from, tc.to, tc.current)
		if len(errs) != len(tc.wantErrFields) {
			t.Errorf("%s: errs = %+v, want fields %v", tc.name, errs, tc.wantErrFields)
			continue
		}
		for i, f := range tc.wantErrFields {
			if errs[i].Field != f {
				t.Errorf("%s: errs[%d].Field = %q, want %q", tc.name, i, errs[i].Field, f)
			}
		}
		if len(errs) > 0 {
			continue
		}
		if from != tc.wantFrom || to != tc.wantTo {
			t.Errorf("%s: got (%q, %q), want (%q, %q)", tc.name, from, to, tc.wantFrom, tc.wantTo)
		}
	}
}

func TestHistoryRows(t *testing.T) {
	p := &models.Profile{
		Experience: []models.Experience{{Title: "Engineer", Company: "Acme", From: "2020-01-01", Current: true}},
		Education:  []models.Education{{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2014-09-01", To: "2018-06-01"}},
	}

	rows := historyRows(p)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if len(row) != len(historyHeaders) {
			t.Errorf("row %v has %d cells, want %d", row, len(row), len(historyHeaders))
		}
	}
	if rows[0][0] != "experience" || rows[0][2] != "Acme" || rows[0][7] != "true" {
		t.Errorf("rows[0] = %v", rows[0])
	}
	if rows[1][0] != "education" || rows[1][3] != "CS" || rows[1][6] != "2018-06-01" {
		t.Errorf("rows[1] = %v", rows[1])
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestWriteHistoryCSV(t *testing.T) {
	p := &models.Profile{
		Experience: []models.Experience{{Title: "Engineer", Company: "Acme", From: "2020-01-01"}},
	}

	var buf bytes.Buffer
	if err := writeHistoryCSV(&buf, p); err != nil {
		t.Fatalf("writeHistoryCSV() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 || records[0][0] != historyHeaders[0] || records[1][2] != "Acme" {
		t.Errorf("records = %v", records)
	}

	if err := writeHistoryCSV(failingWriter{}, p); err == nil {
		t.Error("writeHistoryCSV(failing writer) error = nil, want error")
	}
}
