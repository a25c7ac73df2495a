package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/projsim/internal/catalog"
	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/flight"
)

type ExportData struct {
	Projectile catalog.Spec            `json:"projectile"`
	Params     dynamo.LaunchParameters `json:"params"`
	State      string                  `json:"state"`
	Result     *dynamo.FlightResult    `json:"result,omitempty"`
	Metrics    map[string]float64      `json:"metrics"`
	Steps      int                     `json:"steps"`
	Path       []dynamo.Vec2           `json:"path"`
	Predicted  []dynamo.Vec2           `json:"predicted"`
}

func newExportData(sn flight.Snapshot) ExportData {
	data := ExportData{
		Projectile: sn.Projectile,
		Params:     sn.Params,
		State:      sn.State.String(),
		Result:     sn.Result,
		Metrics:    sn.Metrics,
		Steps:      sn.Steps,
		Path:       sn.Path,
		Predicted:  sn.Predicted,
	}
	if data.Path == nil {
		data.Path = []dynamo.Vec2{}
	}
	if data.Predicted == nil {
		data.Predicted = []dynamo.Vec2{}
	}
	return data
}

// WriteJSON writes one flight as indented JSON.
func WriteJSON(w io.Writer, sn flight.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(sn))
}
