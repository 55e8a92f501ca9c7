// Package apifootball holds the wire types of the api-sports football v3 API
// (https://v3.football.api-sports.io) as used by the players endpoint.
package apifootball

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PlayersEndpoint is the players statistics endpoint path.
const PlayersEndpoint = "/players"

// RawPlayerRecord is one element of a page's response array, kept undecoded
// until normalization.
type RawPlayerRecord = json.RawMessage

// Envelope is the top-level body of every api-sports response.
type Envelope struct {
	Get      string            `json:"get"`
	Results  Int               `json:"results"`
	Paging   Paging            `json:"paging"`
	Errors   json.RawMessage   `json:"errors"`
	Response []RawPlayerRecord `json:"response"`
}

// Paging carries the page counters. Both are sent as numbers or strings.
type Paging struct {
	Current Int `json:"current"`
	Total   Int `json:"total"`
}

// DecodeEnvelope parses a response body.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}

// UpstreamErrors returns the compacted errors member when api-sports reported
// application errors (bad token, quota, invalid parameter) inside a 200
// response, or "" when there were none. The API sends [] for no errors and
// an object keyed by parameter name otherwise.
func (e *Envelope) UpstreamErrors() string {
	raw := bytes.TrimSpace(e.Errors)
	switch string(raw) {
	case "", "null", "[]", "{}":
		return ""
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// PlayerEntry is a decoded RawPlayerRecord.
type PlayerEntry struct {
	Player     *Player     `json:"player"`
	Statistics []Statistic `json:"statistics"`
}

// DecodePlayerEntry parses a single response element.
func DecodePlayerEntry(raw RawPlayerRecord) (PlayerEntry, error) {
	var entry PlayerEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return PlayerEntry{}, err
	}
	return entry, nil
}

// Player is the identity block.
type Player struct {
	ID          Int    `json:"id"`
	Name        String `json:"name"`
	Firstname   String `json:"firstname"`
	Lastname    String `json:"lastname"`
	Age         Int    `json:"age"`
	Nationality String `json:"nationality"`
	Photo       String `json:"photo"`
}

// Statistic is one team/league statistics entry for a player. Groups the
// upstream omits or sends as null decode to their zero value.
type Statistic struct {
	Team     Ref      `json:"team"`
	League   Ref      `json:"league"`
	Games    Games    `json:"games"`
	Goals    Goals    `json:"goals"`
	Shots    Shots    `json:"shots"`
	Penalty  Penalty  `json:"penalty"`
	Passes   Passes   `json:"passes"`
	Dribbles Dribbles `json:"dribbles"`
	Tackles  Tackles  `json:"tackles"`
	Duels    Duels    `json:"duels"`
	Fouls    Fouls    `json:"fouls"`
	Cards    Cards    `json:"cards"`
}

// Ref identifies a team or league.
type Ref struct {
	ID   Int    `json:"id"`
	Name String `json:"name"`
}

// Games is the appearance block: minutes played, position and match rating.
type Games struct {
	Appearences Int    `json:"appearences"` // sic, upstream spelling
	Lineups     Int    `json:"lineups"`
	Minutes     Int    `json:"minutes"`
	Number      Int    `json:"number"`
	Position    String `json:"position"`
	Rating      Float  `json:"rating"`
}

// Goals counts goals scored, conceded and assisted.
type Goals struct {
	Total    Int `json:"total"`
	Conceded Int `json:"conceded"`
	Assists  Int `json:"assists"`
	Saves    Int `json:"saves"`
}

// Shots counts total shots and shots on target.
type Shots struct {
	Total Int `json:"total"`
	On    Int `json:"on"`
}

// Penalty counts penalties won, committed, scored, missed and saved.
type Penalty struct {
	Won      Int `json:"won"`
	Commited Int `json:"commited"` // sic
	Scored   Int `json:"scored"`
	Missed   Int `json:"missed"`
	Saved    Int `json:"saved"`
}

// Passes counts total and key passes. Accuracy is a percentage.
type Passes struct {
	Total    Int `json:"total"`
	Key      Int `json:"key"`
	Accuracy Int `json:"accuracy"`
}

// Dribbles counts attempted, successful and conceded dribbles.
type Dribbles struct {
	Attempts Int `json:"attempts"`
	Success  Int `json:"success"`
	Past     Int `json:"past"`
}

// Tackles counts tackles, blocks and interceptions.
type Tackles struct {
	Total         Int `json:"total"`
	Blocks        Int `json:"blocks"`
	Interceptions Int `json:"interceptions"`
}

// Duels counts duels contested and won.
type Duels struct {
	Total Int `json:"total"`
	Won   Int `json:"won"`
}

// Fouls counts fouls drawn and committed.
type Fouls struct {
	Drawn     Int `json:"drawn"`
	Committed Int `json:"committed"`
}

// Cards counts bookings. YellowRed is a second yellow leading to a red.
type Cards struct {
	Yellow    Int `json:"yellow"`
	YellowRed Int `json:"yellowred"`
	Red       Int `json:"red"`
}
