package job

import (
	"testing"

	"mcfsolver/pkg/apperror"
)

func validDescription() *Description {
	return &Description{
		Stations: []string{"A", "B", "C"},
		Links: []LinkDescription{
			{From: "A", To: "B", Distance: 1, Capacity: 10},
			{From: "B", To: "C", Distance: 1, Capacity: 10},
		},
		Demands:  []DemandDescription{{From: "A", To: "C", Amount: 5}},
		Settings: SettingsDescription{Accuracy: 16, MaxSaturation: 100},
	}
}

func TestValidate_Valid(t *testing.T) {
	v := Validate(validDescription())
	if v.HasErrors() {
		t.Fatalf("unexpected errors: %v", v.ErrorMessages())
	}
}

func TestValidate_NilDescription(t *testing.T) {
	v := Validate(nil)
	if !v.HasErrors() {
		t.Fatal("expected an error for a nil description")
	}
}

func TestValidate_EmptyStations(t *testing.T) {
	desc := validDescription()
	desc.Stations = nil
	v := Validate(desc)
	if !v.HasErrors() {
		t.Fatal("expected an error for an empty station list")
	}
}

func TestValidate_DuplicateStation(t *testing.T) {
	desc := validDescription()
	desc.Stations = []string{"A", "B", "A"}
	v := Validate(desc)
	if !containsCode(v, apperror.CodeDuplicateStation) {
		t.Errorf("expected CodeDuplicateStation, got %v", v.ErrorMessages())
	}
}

func TestValidate_DanglingLink(t *testing.T) {
	desc := validDescription()
	desc.Links = append(desc.Links, LinkDescription{From: "A", To: "Z", Distance: 1, Capacity: 1})
	v := Validate(desc)
	if !containsCode(v, apperror.CodeDanglingEdge) {
		t.Errorf("expected CodeDanglingEdge, got %v", v.ErrorMessages())
	}
}

func TestValidate_SelfLoop(t *testing.T) {
	desc := validDescription()
	desc.Links = append(desc.Links, LinkDescription{From: "A", To: "A", Distance: 1, Capacity: 1})
	v := Validate(desc)
	if !containsCode(v, apperror.CodeSelfLoop) {
		t.Errorf("expected CodeSelfLoop, got %v", v.ErrorMessages())
	}
}

func TestValidate_InvalidSettings(t *testing.T) {
	desc := validDescription()
	desc.Settings.Accuracy = 0
	desc.Settings.MaxSaturation = 200
	v := Validate(desc)
	if !containsCode(v, apperror.CodeInvalidSettings) {
		t.Errorf("expected CodeInvalidSettings, got %v", v.ErrorMessages())
	}
}

func TestValidate_UnlimitedSaturationAllowed(t *testing.T) {
	desc := validDescription()
	desc.Settings.MaxSaturation = 1<<64 - 1
	v := Validate(desc)
	if containsCode(v, apperror.CodeInvalidSettings) {
		t.Errorf("unlimited max_saturation should be valid, got %v", v.ErrorMessages())
	}
}

func containsCode(v *apperror.ValidationErrors, code apperror.ErrorCode) bool {
	for _, e := range v.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}
