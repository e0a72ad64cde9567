package listview

import (
	"reflect"
	"strconv"
	"testing"
)

type row struct {
	ID      string
	Name    string
	Dept    string
	Balance float64
	Date    string
}

var testView = View[row]{
	SearchKeys: []string{"id", "name"},
	Fields: map[string]Field[row]{
		"id":      {Kind: Text, Value: func(r row) string { return r.ID }},
		"name":    {Kind: Text, Value: func(r row) string { return r.Name }},
		"dept":    {Kind: Text, Value: func(r row) string { return r.Dept }},
		"balance": {Kind: Numeric, Value: func(r row) string { return strconv.FormatFloat(r.Balance, 'f', -1, 64) }},
		"date":    {Kind: Date, Value: func(r row) string { return r.Date }},
	},
}

var rows = []row{
	{ID: "SPC25-0001", Name: "Ana Reyes", Dept: "college", Balance: 3000, Date: "2025-06-10"},
	{ID: "SPC24-0002", Name: "Ben Cruz", Dept: "shs", Balance: 0, Date: "2024-08-01"},
	{ID: "SPC25-0003", Name: "Carla Santos", Dept: "college", Balance: 1500, Date: "not yet paid"},
	{ID: "SPC23-0004", Name: "Dan Lim", Dept: "jhs", Balance: 250, Date: "2023-01-15"},
}

func ids(items []row) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.ID
	}
	return out
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	got := testView.Apply(rows, Query{Search: "spc25", PageSize: 10})
	want := []string{"SPC25-0001", "SPC25-0003"}
	if !reflect.DeepEqual(ids(got.Items), want) {
		t.Errorf("search spc25 = %v, want %v", ids(got.Items), want)
	}

	// A term matching any configured field matches the record.
	got = testView.Apply(rows, Query{Search: "cruz", PageSize: 10})
	if len(got.Items) != 1 || got.Items[0].ID != "SPC24-0002" {
		t.Errorf("search cruz = %v, want [SPC24-0002]", ids(got.Items))
	}
}

func TestFilterExactMatchAndEmptyNoOp(t *testing.T) {
	got := testView.Apply(rows, Query{Filters: map[string]string{"dept": "college"}, PageSize: 10})
	if len(got.Items) != 2 {
		t.Fatalf("dept=college matched %d rows, want 2", len(got.Items))
	}

	// Empty filter value is a no-op.
	got = testView.Apply(rows, Query{Filters: map[string]string{"dept": ""}, PageSize: 10})
	if len(got.Items) != len(rows) {
		t.Errorf("empty filter matched %d rows, want %d", len(got.Items), len(rows))
	}
}

func TestFilterConjunctionCommutative(t *testing.T) {
	a := testView.Apply(rows, Query{Filters: map[string]string{"dept": "college", "id": "SPC25-0003"}, PageSize: 10})
	b := testView.Apply(rows, Query{Filters: map[string]string{"id": "SPC25-0003", "dept": "college"}, PageSize: 10})
	if !reflect.DeepEqual(ids(a.Items), ids(b.Items)) {
		t.Errorf("filter order changed result: %v vs %v", ids(a.Items), ids(b.Items))
	}
	if len(a.Items) != 1 || a.Items[0].ID != "SPC25-0003" {
		t.Errorf("conjunction = %v, want [SPC25-0003]", ids(a.Items))
	}
}

func TestSortNumericCoercion(t *testing.T) {
	got := testView.Apply(rows, Query{SortKey: "balance", PageSize: 10})
	want := []string{"SPC24-0002", "SPC23-0004", "SPC25-0003", "SPC25-0001"}
	if !reflect.DeepEqual(ids(got.Items), want) {
		t.Errorf("sort balance asc = %v, want %v", ids(got.Items), want)
	}
}

func TestSortDateSentinelSortsEarliest(t *testing.T) {
	got := testView.Apply(rows, Query{SortKey: "date", PageSize: 10})
	// "not yet paid" is unparseable and must sort before every real date.
	if got.Items[0].ID != "SPC25-0003" {
		t.Errorf("first row = %s, want SPC25-0003 (unparseable date sorts earliest)", got.Items[0].ID)
	}
}

func TestSortRoundTrip(t *testing.T) {
	asc := testView.Apply(rows, Query{SortKey: "id", PageSize: 10})
	desc := testView.Apply(rows, Query{SortKey: "id", SortDesc: true, PageSize: 10})

	reversed := make([]string, len(asc.Items))
	for i, r := range asc.Items {
		reversed[len(asc.Items)-1-i] = r.ID
	}
	if !reflect.DeepEqual(ids(desc.Items), reversed) {
		t.Errorf("desc = %v, want reverse of asc %v", ids(desc.Items), reversed)
	}
}

func TestSortStableOnTies(t *testing.T) {
	got := testView.Apply(rows, Query{SortKey: "dept", PageSize: 10})
	// Both college rows tie; original order must hold.
	var college []string
	for _, r := range got.Items {
		if r.Dept == "college" {
			college = append(college, r.ID)
		}
	}
	want := []string{"SPC25-0001", "SPC25-0003"}
	if !reflect.DeepEqual(college, want) {
		t.Errorf("tied rows = %v, want original order %v", college, want)
	}
}

func TestPaginationBounds(t *testing.T) {
	many := make([]row, 23)
	for i := range many {
		many[i] = row{ID: "S" + strconv.Itoa(i)}
	}

	for page := 1; page <= 4; page++ {
		got := testView.Apply(many, Query{Page: page, PageSize: 10})
		p := got.Pagination
		if p.FirstIndex+len(got.Items) > p.TotalItems {
			t.Errorf("page %d: firstIndex %d + len %d exceeds total %d", page, p.FirstIndex, len(got.Items), p.TotalItems)
		}
	}

	// Out-of-range page clamps to the last page.
	got := testView.Apply(many, Query{Page: 99, PageSize: 10})
	if got.Pagination.CurrentPage != 3 || len(got.Items) != 3 {
		t.Errorf("page 99 -> page %d with %d items, want page 3 with 3 items",
			got.Pagination.CurrentPage, len(got.Items))
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{name: "few pages", current: 2, total: 3, want: []int{1, 2, 3}},
		{name: "near start", current: 2, total: 20, want: []int{1, 2, 3, 4, 5}},
		{name: "middle recentered", current: 10, total: 20, want: []int{8, 9, 10, 11, 12}},
		{name: "near end", current: 19, total: 20, want: []int{16, 17, 18, 19, 20}},
		{name: "single page", current: 1, total: 1, want: []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Window(tt.current, tt.total); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Window(%d, %d) = %v, want %v", tt.current, tt.total, got, tt.want)
			}
		})
	}
}

func TestNextSort(t *testing.T) {
	key, desc := NextSort("date", true, "date")
	if key != "date" || desc {
		t.Errorf("reselecting active key: got (%s, %v), want (date, false)", key, desc)
	}

	key, desc = NextSort("date", false, "name")
	if key != "name" || desc {
		t.Errorf("selecting new key: got (%s, %v), want (name, false)", key, desc)
	}
}
