package fgaudit_test

import (
	"testing"

	"github.com/vvka-141/fgaudit/pkg/fgaudit"
)

func TestSortRecords(t *testing.T) {
	records := []fgaudit.FileRecord{
		{Parent: "src", Name: "main.4gl"},
		{Parent: ".", Name: "Makefile"},
		{Parent: "src", Name: "globals.4gl"},
		{Parent: ".", Name: "README.txt"},
		{Parent: "forms", Name: "orders.per"},
	}

	fgaudit.SortRecords(records)

	want := []struct{ parent, name string }{
		{".", "Makefile"},
		{".", "README.txt"},
		{"forms", "orders.per"},
		{"src", "globals.4gl"},
		{"src", "main.4gl"},
	}
	for i, w := range want {
		if records[i].Parent != w.parent || records[i].Name != w.name {
			t.Errorf("records[%d] = (%s, %s), want (%s, %s)",
				i, records[i].Parent, records[i].Name, w.parent, w.name)
		}
	}
}

func TestSortRecords_Empty(t *testing.T) {
	var records []fgaudit.FileRecord
	fgaudit.SortRecords(records) // must not panic
}
