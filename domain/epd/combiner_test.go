package epd

import (
	"math"
	"reflect"
	"testing"
)

func summaryWith(material string, medianEE, medianEC float64) *MaterialSummary {
	return &MaterialSummary{
		Material:     material,
		MedianEnergy: medianEE,
		MedianCarbon: medianEC,
	}
}

func TestCombine_WithSecondary(t *testing.T) {
	primary := map[string]*MaterialSummary{
		"marble": summaryWith("marble", 50, 10),
	}
	secondary := map[string]*MaterialSummary{
		"grout": summaryWith("grout", 5, 2),
	}
	mapping := map[string]string{"marble": "grout"}

	rows := Combine([]string{"marble"}, primary, secondary, mapping)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Secondary != "grout" {
		t.Errorf("secondary = %q, want grout", row.Secondary)
	}
	if row.CombinedEnergy != 55 {
		t.Errorf("combined EE = %v, want 55", row.CombinedEnergy)
	}
	if row.CombinedCarbon != 12 {
		t.Errorf("combined EC = %v, want 12", row.CombinedCarbon)
	}
}

func TestCombine_SecondaryWithoutData(t *testing.T) {
	primary := map[string]*MaterialSummary{
		"marble": summaryWith("marble", 50, 10),
	}
	mapping := map[string]string{"marble": "grout"}

	rows := Combine([]string{"marble"}, primary, map[string]*MaterialSummary{}, mapping)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Secondary != SecondaryNone {
		t.Errorf("secondary = %q, want %q", rows[0].Secondary, SecondaryNone)
	}
	if rows[0].CombinedEnergy != 50 {
		t.Errorf("combined EE = %v, want 50", rows[0].CombinedEnergy)
	}
}

func TestCombine_SkipsPrimariesWithoutData(t *testing.T) {
	primary := map[string]*MaterialSummary{
		"granite": summaryWith("granite", 30, 5),
	}

	rows := Combine([]string{"missing", "granite"}, primary, nil, nil)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Primary != "granite" {
		t.Errorf("primary = %q, want granite", rows[0].Primary)
	}
}

func TestCombine_PreservesRequestOrder(t *testing.T) {
	primary := map[string]*MaterialSummary{
		"b": summaryWith("b", 2, 2),
		"a": summaryWith("a", 1, 1),
		"c": summaryWith("c", 3, 3),
	}

	rows := Combine([]string{"c", "a", "b"}, primary, nil, nil)
	var got []string
	for _, r := range rows {
		got = append(got, r.Primary)
	}
	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("row order = %v, want %v", got, want)
	}
}

func TestSortedBy_AscendingAndStable(t *testing.T) {
	rows := []ComparisonRow{
		{Primary: "a", CombinedEnergy: 30, CombinedCarbon: 1},
		{Primary: "b", CombinedEnergy: 10, CombinedCarbon: 2},
		{Primary: "c", CombinedEnergy: 10, CombinedCarbon: 3},
		{Primary: "d", CombinedEnergy: 20, CombinedCarbon: 4},
	}

	sorted := SortedBy(rows, MetricEnergy)

	var order []string
	for _, r := range sorted {
		order = append(order, r.Primary)
	}
	// b and c tie on EE; b came first and must stay first.
	want := []string{"b", "c", "d", "a"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("sorted order = %v, want %v", order, want)
	}

	// Input order untouched.
	if rows[0].Primary != "a" {
		t.Errorf("SortedBy mutated its input: %v", rows)
	}
}

func TestSortedBy_TwoIndependentOrderings(t *testing.T) {
	rows := []ComparisonRow{
		{Primary: "a", CombinedEnergy: 1, CombinedCarbon: 9},
		{Primary: "b", CombinedEnergy: 2, CombinedCarbon: 1},
	}

	byEE := SortedBy(rows, MetricEnergy)
	byEC := SortedBy(rows, MetricCarbon)

	if byEE[0].Primary != "a" || byEC[0].Primary != "b" {
		t.Errorf("orderings not independent: byEE=%v byEC=%v", byEE, byEC)
	}
}

func TestSortedBy_UndefinedValuesLast(t *testing.T) {
	nan := math.NaN()
	rows := []ComparisonRow{
		{Primary: "a", CombinedEnergy: nan},
		{Primary: "b", CombinedEnergy: 5},
		{Primary: "c", CombinedEnergy: nan},
		{Primary: "d", CombinedEnergy: 1},
	}

	sorted := SortedBy(rows, MetricEnergy)
	var order []string
	for _, r := range sorted {
		order = append(order, r.Primary)
	}
	want := []string{"d", "b", "a", "c"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("sorted order = %v, want %v", order, want)
	}
}
