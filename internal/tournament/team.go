package tournament

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CaptainID is the gateway's identifier for the user who registered a team.
// Older data files stored it as a JSON number, so both forms are accepted on decode.
type CaptainID string

func (id *CaptainID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = CaptainID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("captain_id must be a string or number: %w", err)
	}
	*id = CaptainID(n.String())
	return nil
}

type Team struct {
	Name      string    `json:"team_name"`
	Players   []string  `json:"players"`
	CaptainID CaptainID `json:"captain_id"`
}

// NameMatches reports whether name equals the team name ignoring case.
func (t Team) NameMatches(name string) bool {
	return strings.EqualFold(t.Name, name)
}

func (t Team) clone() Team {
	players := make([]string, len(t.Players))
	copy(players, t.Players)
	t.Players = players
	return t
}
