package models

import (
	"encoding/json"
	"fmt"
)

// Position represents the four FPL element types.
type Position string

const (
	PositionGoalkeeper Position = "Goalkeeper"
	PositionDefender   Position = "Defender"
	PositionMidfielder Position = "Midfielder"
	PositionForward    Position = "Forward"
)

// Positions lists the positions in squad display order.
var Positions = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionMidfielder,
	PositionForward,
}

// ParsePosition converts a string into a Position.
func ParsePosition(s string) (Position, error) {
	switch Position(s) {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return Position(s), nil
	}
	return "", fmt.Errorf("unknown position %q", s)
}

// Short returns the abbreviated position label (GK, DEF, MID, FWD).
func (p Position) Short() string {
	switch p {
	case PositionGoalkeeper:
		return "GK"
	case PositionDefender:
		return "DEF"
	case PositionMidfielder:
		return "MID"
	case PositionForward:
		return "FWD"
	}
	return string(p)
}

// Cost is a player price in tenths of £1.0m, matching the FPL API's
// now_cost unit. Keeping costs integral makes budget comparisons exact:
// a squad that lands precisely on the budget ceiling is feasible.
type Cost int

// Millions returns the cost in £m for display.
func (c Cost) Millions() float64 {
	return float64(c) / 10.0
}

func (c Cost) String() string {
	return fmt.Sprintf("£%.1fm", c.Millions())
}

// Metric selects which player statistic an optimization maximizes.
type Metric string

const (
	MetricValue             Metric = "value"
	MetricForm              Metric = "form"
	MetricTotalPoints       Metric = "total_points"
	MetricICTIndex          Metric = "ict_index"
	MetricSelectedByPercent Metric = "selected_by_percent"
)

// Metrics lists every supported optimization target.
var Metrics = []Metric{
	MetricValue,
	MetricForm,
	MetricTotalPoints,
	MetricICTIndex,
	MetricSelectedByPercent,
}

// ParseMetric converts a string into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricValue, MetricForm, MetricTotalPoints, MetricICTIndex, MetricSelectedByPercent:
		return Metric(s), nil
	}
	return "", fmt.Errorf("unknown objective metric %q", s)
}

// Player is a single row of the FPL statistics table. Players are
// read-only inputs to the optimizer.
type Player struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Position          Position `json:"position"`
	Team              string   `json:"team"`
	Cost              Cost     `json:"now_cost"`
	Value             float64  `json:"value"`
	Form              float64  `json:"form"`
	TotalPoints       int      `json:"total_points"`
	ICTIndex          float64  `json:"ict_index"`
	SelectedByPercent float64  `json:"selected_by_percent"`
}

// MetricValue returns the player's statistic for the given metric.
func (p Player) MetricValue(m Metric) float64 {
	switch m {
	case MetricValue:
		return p.Value
	case MetricForm:
		return p.Form
	case MetricTotalPoints:
		return float64(p.TotalPoints)
	case MetricICTIndex:
		return p.ICTIndex
	case MetricSelectedByPercent:
		return p.SelectedByPercent
	}
	return 0
}

// UnmarshalJSON fills the ID from the name when the dataset carries no
// separate identifier, as the original FPL table is keyed by name.
func (p *Player) UnmarshalJSON(data []byte) error {
	type alias Player
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = a.Name
	}
	*p = Player(a)
	return nil
}

// Squad is the result of a squad optimization: the 15 selected players
// plus the achieved totals.
type Squad struct {
	Players        []Player `json:"players"`
	Metric         Metric   `json:"objective_metric"`
	ObjectiveTotal float64  `json:"objective_total"`
	TotalCost      Cost     `json:"total_cost"`
}

// PositionCounts tallies the squad's players per position.
func (s *Squad) PositionCounts() map[Position]int {
	counts := make(map[Position]int, len(Positions))
	for _, p := range s.Players {
		counts[p.Position]++
	}
	return counts
}

// TeamCounts tallies the squad's players per team.
func (s *Squad) TeamCounts() map[string]int {
	counts := make(map[string]int)
	for _, p := range s.Players {
		counts[p.Team]++
	}
	return counts
}

// Contains reports whether the squad includes the player id.
func (s *Squad) Contains(id string) bool {
	for _, p := range s.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}
