package job

import (
	"testing"

	"mcfsolver/internal/mcf"
)

func TestBuild_ValidDescription(t *testing.T) {
	j, err := Build(validDescription())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if j.Size() != 3 {
		t.Errorf("Size() = %d, want 3", j.Size())
	}

	a, _ := j.NodeByStation(mcf.StationID("A"))
	b, _ := j.NodeByStation(mcf.StationID("B"))
	if !j.HasEdge(a, b) {
		t.Error("expected edge A->B")
	}
	if got := j.EdgeCapacity(a, b); got != 10 {
		t.Errorf("EdgeCapacity(A,B) = %d, want 10", got)
	}

	c, _ := j.NodeByStation(mcf.StationID("C"))
	if got := j.Demand(a, c); got != 5 {
		t.Errorf("Demand(A,C) = %d, want 5", got)
	}
	if j.HasEdge(a, c) == false {
		t.Error("expected a demand-only record for A->C")
	}
	if len(j.Neighbors(a)) != 1 {
		t.Errorf("Neighbors(A) should only contain the routing edge, got %v", j.Neighbors(a))
	}
}

func TestBuild_InvalidDescription(t *testing.T) {
	desc := validDescription()
	desc.Stations = nil
	if _, err := Build(desc); err == nil {
		t.Fatal("expected an error for an invalid description")
	}
}

func TestNewRecord_AssignsIDAndHash(t *testing.T) {
	rec, err := NewRecord(validDescription())
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	if rec.ID.String() == "" {
		t.Error("expected a non-empty UUID")
	}
	if rec.Hash == "" {
		t.Error("expected a non-empty structural hash")
	}
	if rec.Job == nil {
		t.Error("expected a built job")
	}
}

func TestNewRecord_SameDescriptionSameHash(t *testing.T) {
	rec1, err := NewRecord(validDescription())
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	rec2, err := NewRecord(validDescription())
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	if rec1.Hash != rec2.Hash {
		t.Errorf("identical descriptions produced different hashes: %s != %s", rec1.Hash, rec2.Hash)
	}
	if rec1.ID == rec2.ID {
		t.Error("expected distinct UUIDs across records")
	}
}
