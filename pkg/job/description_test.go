package job

import "testing"

func TestParse_YAML(t *testing.T) {
	data := []byte(`
stations: ["A", "B", "C"]
links:
  - from: A
    to: B
    distance: 1
    capacity: 10
    demand: 0
demands:
  - from: A
    to: C
    amount: 5
settings:
  accuracy: 16
  max_saturation: 100
`)
	desc, err := Parse(data, ".yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(desc.Stations) != 3 {
		t.Errorf("Stations = %v, want 3 entries", desc.Stations)
	}
	if len(desc.Links) != 1 || desc.Links[0].Capacity != 10 {
		t.Errorf("Links = %v", desc.Links)
	}
	if desc.Settings.Accuracy != 16 {
		t.Errorf("Settings.Accuracy = %d, want 16", desc.Settings.Accuracy)
	}
}

func TestParse_JSON(t *testing.T) {
	data := []byte(`{
		"stations": ["A", "B"],
		"links": [{"from": "A", "to": "B", "distance": 1, "capacity": 5, "demand": 0}],
		"settings": {"accuracy": 8, "max_saturation": 50}
	}`)
	desc, err := Parse(data, ".json")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(desc.Stations) != 2 {
		t.Errorf("Stations = %v, want 2 entries", desc.Stations)
	}
}

func TestParse_UnsupportedExtension(t *testing.T) {
	_, err := Parse([]byte("irrelevant"), ".toml")
	if err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile("/nonexistent/job.yaml")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
