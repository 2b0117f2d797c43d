package models

// FPL squad composition rules. A full squad is 15 players: 2 goalkeepers,
// 5 defenders, 5 midfielders and 3 forwards, at most 3 from any one club,
// within a £100.0m budget.
const (
	SquadSize     = 15
	MaxPerTeam    = 3
	DefaultBudget = Cost(1000) // £100.0m in tenths
)

// PositionQuotas is the exact number of players required per position.
var PositionQuotas = map[Position]int{
	PositionGoalkeeper: 2,
	PositionDefender:   5,
	PositionMidfielder: 5,
	PositionForward:    3,
}
