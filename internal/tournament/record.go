package tournament

import "slices"

// Record is the whole persisted tournament state.
type Record struct {
	Slots     int      `json:"slots"`
	Teams     []Team   `json:"teams"`
	Confirmed []string `json:"confirmed"`
}

func NewRecord() *Record {
	return &Record{
		Slots:     0,
		Teams:     []Team{},
		Confirmed: []string{},
	}
}

// Normalize replaces nil slices so the record always encodes as arrays.
func (r *Record) Normalize() {
	if r.Teams == nil {
		r.Teams = []Team{}
	}
	for i := range r.Teams {
		if r.Teams[i].Players == nil {
			r.Teams[i].Players = []string{}
		}
	}
	if r.Confirmed == nil {
		r.Confirmed = []string{}
	}
}

func (r *Record) Clone() *Record {
	c := &Record{
		Slots:     r.Slots,
		Teams:     make([]Team, len(r.Teams)),
		Confirmed: make([]string, len(r.Confirmed)),
	}
	for i, t := range r.Teams {
		c.Teams[i] = t.clone()
	}
	copy(c.Confirmed, r.Confirmed)
	return c
}

// Filled is the number of slots taken by registered teams.
func (r *Record) Filled() int {
	return len(r.Teams)
}

func (r *Record) IsFull() bool {
	return len(r.Teams) >= r.Slots
}

// FindTeamByName returns the first team whose name matches case-insensitively.
func (r *Record) FindTeamByName(name string) (*Team, bool) {
	for i := range r.Teams {
		if r.Teams[i].NameMatches(name) {
			return &r.Teams[i], true
		}
	}
	return nil, false
}

// FindTeamByCaptain returns the first team, in registration order, captained by id.
func (r *Record) FindTeamByCaptain(id CaptainID) (*Team, bool) {
	for i := range r.Teams {
		if r.Teams[i].CaptainID == id {
			return &r.Teams[i], true
		}
	}
	return nil, false
}

func (r *Record) IsConfirmed(teamName string) bool {
	return slices.Contains(r.Confirmed, teamName)
}
