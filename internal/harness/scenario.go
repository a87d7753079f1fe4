package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/triadhq/triad/pkg/models"
)

// Scenario pairs a task label with a UI snapshot to decompose or run.
type Scenario struct {
	Name    string         `yaml:"name"`
	UIState models.UIState `yaml:"ui_state"`
}

// DefaultScenarios returns the built-in demo scenarios covering the three
// standard Android UI situations: a shallow settings screen, a deep file
// dialog flow, and a form-entry flow.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{
			Name: "SystemBrightnessMax",
			UIState: models.UIState{
				HierarchyDepth: 3,
				Elements: []models.UIElement{
					{Type: "button"}, {Type: "slider"}, {Type: "text"},
				},
			},
		},
		{
			Name: "FilesDeleteFile",
			UIState: models.UIState{
				HierarchyDepth: 5,
				Elements: []models.UIElement{
					{Type: "list"}, {Type: "button"}, {Type: "dialog"}, {Type: "button"},
				},
			},
		},
		{
			Name: "ContactsAdd",
			UIState: models.UIState{
				HierarchyDepth: 4,
				Elements: []models.UIElement{
					{Type: "form"}, {Type: "input"}, {Type: "input"}, {Type: "button"},
				},
			},
		},
	}
}

// LoadScenarios reads scenarios from a YAML file.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios: %w", err)
	}
	var scenarios []Scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("parse scenarios %s: %w", path, err)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios in %s", path)
	}
	return scenarios, nil
}
