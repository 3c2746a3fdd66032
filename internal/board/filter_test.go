package board

import (
	"testing"

	"github.com/tranvq/pipeboard/internal/models"
)

func testBoard() []*models.Column {
	return []*models.Column{
		{ID: "todo", Title: "Todo", Tasks: []*models.Task{
			{ID: "1", Title: "Order Cables", Description: "for the main cabinet"},
			{ID: "2", Title: "Site survey", Description: ""},
		}},
		{ID: "done", Title: "Done", Tasks: []*models.Task{
			{ID: "3", Title: "Kickoff", Description: "cables discussed"},
		}},
	}
}

func TestFilterMatchesTitleAndDescription(t *testing.T) {
	cols := Filter(testBoard(), "CABLE")
	if len(cols) != 2 {
		t.Fatalf("columns = %d, want 2 (empty columns kept)", len(cols))
	}
	if len(cols[0].Tasks) != 1 || cols[0].Tasks[0].ID != "1" {
		t.Fatalf("todo tasks = %+v", cols[0].Tasks)
	}
	if len(cols[1].Tasks) != 1 || cols[1].Tasks[0].ID != "3" {
		t.Fatalf("done tasks = %+v", cols[1].Tasks)
	}
}

func TestFilterKeepsEmptiedColumns(t *testing.T) {
	cols := Filter(testBoard(), "survey")
	if len(cols) != 2 {
		t.Fatal("columns must survive filtering")
	}
	if len(cols[1].Tasks) != 0 {
		t.Fatalf("done tasks = %d, want 0", len(cols[1].Tasks))
	}
}

func TestFilterBlankQueryReturnsInput(t *testing.T) {
	in := testBoard()
	if got := Filter(in, "   "); len(got) != 2 || got[0] != in[0] {
		t.Fatal("blank query must return the input unchanged")
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := testBoard()
	Filter(in, "cable")
	if len(in[0].Tasks) != 2 {
		t.Fatal("input board mutated")
	}
}

func TestFilterNoMatches(t *testing.T) {
	cols := Filter(testBoard(), "zzz")
	for _, col := range cols {
		if len(col.Tasks) != 0 {
			t.Fatalf("column %s kept tasks", col.ID)
		}
	}
}
