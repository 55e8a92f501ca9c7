package normalize

import (
	"github.com/Sternrassler/player-stats-etl/pkg/apifootball"
)

// FlatPlayerRecord is one fully populated output row. Field order matches Columns.
type FlatPlayerRecord struct {
	PlayerID          int     `json:"PlayerId" db:"PlayerId"`
	Player            string  `json:"player" db:"player"`
	Age               int     `json:"age" db:"age"`
	Nationality       string  `json:"nationality" db:"nationality"`
	Position          string  `json:"position" db:"position"`
	Rating            float64 `json:"rating" db:"rating"`
	Match             int     `json:"match" db:"match"`
	Minutes           int     `json:"minutes" db:"minutes"`
	Goals             int     `json:"goals" db:"goals"`
	TotalShots        int     `json:"total_shots" db:"total_shots"`
	OnTargetShots     int     `json:"ontarget_shots" db:"ontarget_shots"`
	PenaltyGoals      int     `json:"penalty_goals" db:"penalty_goals"`
	PenaltyMissed     int     `json:"penalty_missed" db:"penalty_missed"`
	Assists           int     `json:"assists" db:"assists"`
	Passes            int     `json:"passes" db:"passes"`
	KeyPasses         int     `json:"key_passes" db:"key_passes"`
	DribbleAttempts   int     `json:"dribble_attempts" db:"dribble_attempts"`
	DribbleSuccess    int     `json:"dribble_success" db:"dribble_success"`
	Tackles           int     `json:"tackles" db:"tackles"`
	Interception      int     `json:"interception" db:"interception"`
	AerialDuelTotal   int     `json:"aerial_duel_total" db:"aerial_duel_total"`
	AerialDuelWon     int     `json:"aerial_duel_won" db:"aerial_duel_won"`
	Fouls             int     `json:"fouls" db:"fouls"`
	YellowCard        int     `json:"yellow_card" db:"yellow_card"`
	DoubleYellowToRed int     `json:"doubleYellowToRed" db:"doubleYellowToRed"`
	RedCard           int     `json:"red_card" db:"red_card"`
}

// Values returns the record as a row in Columns order.
func (r *FlatPlayerRecord) Values() []any {
	row := make([]any, len(Columns))
	for i, col := range Columns {
		row[i] = col.field(r)
	}
	return row
}

// Kind is the target type of a column.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Column declares one output column: its name, target type and upstream source path.
// Absent, null and empty leaves take the zero value of Kind.
type Column struct {
	Name   string
	Kind   Kind
	Source string

	set   func(r *FlatPlayerRecord, p *apifootball.Player, s *apifootball.Statistic)
	field func(r *FlatPlayerRecord) any
}

// Columns is the coercion table. Source paths below player are relative to
// the entry; all others are relative to statistics[0].
var Columns = []Column{
	{
		Name: "PlayerId", Kind: KindInt, Source: "player.id",
		set:   func(r *FlatPlayerRecord, p *apifootball.Player, _ *apifootball.Statistic) { r.PlayerID = p.ID.Get() },
		field: func(r *FlatPlayerRecord) any { return r.PlayerID },
	},
	{
		Name: "player", Kind: KindString, Source: "player.name",
		set:   func(r *FlatPlayerRecord, p *apifootball.Player, _ *apifootball.Statistic) { r.Player = p.Name.Get() },
		field: func(r *FlatPlayerRecord) any { return r.Player },
	},
	{
		Name: "age", Kind: KindInt, Source: "player.age",
		set:   func(r *FlatPlayerRecord, p *apifootball.Player, _ *apifootball.Statistic) { r.Age = p.Age.Get() },
		field: func(r *FlatPlayerRecord) any { return r.Age },
	},
	{
		Name: "nationality", Kind: KindString, Source: "player.nationality",
		set:   func(r *FlatPlayerRecord, p *apifootball.Player, _ *apifootball.Statistic) { r.Nationality = p.Nationality.Get() },
		field: func(r *FlatPlayerRecord) any { return r.Nationality },
	},
	{
		Name: "position", Kind: KindString, Source: "games.position",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.Position = s.Games.Position.Get() },
		field: func(r *FlatPlayerRecord) any { return r.Position },
	},
	{
		Name: "rating", Kind: KindFloat, Source: "games.rating",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.Rating = s.Games.Rating.Get() },
		field: func(r *FlatPlayerRecord) any { return r.Rating },
	},
	{
		Name: "match", Kind: KindInt, Source: "games.appearences",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.Match = s.Games.Appearences.Get() },
		field: func(r *FlatPlayerRecord) any { return r.Match },
	},
	{
		Name: "minutes", Kind: KindInt, Source: "games.minutes",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.Minutes = s.Games.Minutes.Get() },
		field: func(r *FlatPlayerRecord) any { return r.Minutes },
	},
	{
		Name: "goals", Kind: KindInt, Source: "goals.total",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.Goals = s.Goals.Total.Get() },
		field: func(r *FlatPlayerRecord) any { return r.Goals },
	},
	{
		Name: "total_shots", Kind: KindInt, Source: "shots.total",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.TotalShots = s.Shots.Total.Get() },
		field: func(r *FlatPlayerRecord) any { return r.TotalShots },
	},
	{
		Name: "ontarget_shots", Kind: KindInt, Source: "shots.on",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.OnTargetShots = s.Shots.On.Get() },
		field: func(r *FlatPlayerRecord) any { return r.OnTargetShots },
	},
	{
		Name: "penalty_goals", Kind: KindInt, Source: "penalty.scored",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.PenaltyGoals = s.Penalty.Scored.Get() },
		field: func(r *FlatPlayerRecord) any { return r.PenaltyGoals },
	},
	{
		Name: "penalty_missed", Kind: KindInt, Source: "penalty.missed",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.PenaltyMissed = s.Penalty.Missed.Get() },
		field: func(r *FlatPlayerRecord) any { return r.PenaltyMissed },
	},
	{
		Name: "assists", Kind: KindInt, Source: "goals.assists",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.Assists = s.Goals.Assists.Get() },
		field: func(r *FlatPlayerRecord) any { return r.Assists },
	},
	{
		Name: "passes", Kind: KindInt, Source: "passes.total",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.Passes = s.Passes.Total.Get() },
		field: func(r *FlatPlayerRecord) any { return r.Passes },
	},
	{
		Name: "key_passes", Kind: KindInt, Source: "passes.key",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.KeyPasses = s.Passes.Key.Get() },
		field: func(r *FlatPlayerRecord) any { return r.KeyPasses },
	},
	{
		Name: "dribble_attempts", Kind: KindInt, Source: "dribbles.attempts",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.DribbleAttempts = s.Dribbles.Attempts.Get() },
		field: func(r *FlatPlayerRecord) any { return r.DribbleAttempts },
	},
	{
		Name: "dribble_success", Kind: KindInt, Source: "dribbles.success",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.DribbleSuccess = s.Dribbles.Success.Get() },
		field: func(r *FlatPlayerRecord) any { return r.DribbleSuccess },
	},
	{
		Name: "tackles", Kind: KindInt, Source: "tackles.total",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.Tackles = s.Tackles.Total.Get() },
		field: func(r *FlatPlayerRecord) any { return r.Tackles },
	},
	{
		Name: "interception", Kind: KindInt, Source: "tackles.interceptions",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.Interception = s.Tackles.Interceptions.Get() },
		field: func(r *FlatPlayerRecord) any { return r.Interception },
	},
	{
		Name: "aerial_duel_total", Kind: KindInt, Source: "duels.total",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.AerialDuelTotal = s.Duels.Total.Get() },
		field: func(r *FlatPlayerRecord) any { return r.AerialDuelTotal },
	},
	{
		Name: "aerial_duel_won", Kind: KindInt, Source: "duels.won",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.AerialDuelWon = s.Duels.Won.Get() },
		field: func(r *FlatPlayerRecord) any { return r.AerialDuelWon },
	},
	{
		Name: "fouls", Kind: KindInt, Source: "fouls.committed",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.Fouls = s.Fouls.Committed.Get() },
		field: func(r *FlatPlayerRecord) any { return r.Fouls },
	},
	{
		Name: "yellow_card", Kind: KindInt, Source: "cards.yellow",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.YellowCard = s.Cards.Yellow.Get() },
		field: func(r *FlatPlayerRecord) any { return r.YellowCard },
	},
	{
		Name: "doubleYellowToRed", Kind: KindInt, Source: "cards.yellowred",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.DoubleYellowToRed = s.Cards.YellowRed.Get() },
		field: func(r *FlatPlayerRecord) any { return r.DoubleYellowToRed },
	},
	{
		Name: "red_card", Kind: KindInt, Source: "cards.red",
		set:   func(r *FlatPlayerRecord, _ *apifootball.Player, s *apifootball.Statistic) { r.RedCard = s.Cards.Red.Get() },
		field: func(r *FlatPlayerRecord) any { return r.RedCard },
	},
}

// ColumnNames returns the column names in order.
func ColumnNames() []string {
	names := make([]string, len(Columns))
	for i, col := range Columns {
		names[i] = col.Name
	}
	return names
}
