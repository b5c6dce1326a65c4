package trajectory

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

type document struct {
	Agents []Trajectory `json:"agents"`
}

// WriteJSON encodes trajectories as {"agents": [...]}.
func WriteJSON(w io.Writer, trajectories []Trajectory) error {
	if trajectories == nil {
		trajectories = []Trajectory{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Agents: trajectories}); err != nil {
		return fmt.Errorf("failed to encode trajectories: %w", err)
	}
	return nil
}

// WriteCSV writes one row per observation: tick,agent_id,node,x,y.
// Coordinates are left empty for nodes without a position.
func WriteCSV(w io.Writer, trajectories []Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tick", "agent_id", "node", "x", "y"}); err != nil {
		return err
	}

	for _, tr := range trajectories {
		for _, p := range tr.Points {
			x, y := "", ""
			if p.HasPosition {
				x = strconv.FormatFloat(p.Position.X, 'f', -1, 64)
				y = strconv.FormatFloat(p.Position.Y, 'f', -1, 64)
			}
			row := []string{
				strconv.Itoa(p.Tick),
				strconv.Itoa(p.AgentID),
				string(p.Node),
				x,
				y,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write trajectories csv: %w", err)
	}
	return nil
}
