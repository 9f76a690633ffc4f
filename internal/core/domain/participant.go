package domain

import (
	"sort"
	"strings"
)

// Participant identifies one of the people sharing the car costs.
type Participant string

// ParticipantSet is the configured, closed set of participants for a ledger.
type ParticipantSet struct {
	members map[Participant]struct{}
	ordered []Participant
}

// NewParticipantSet builds a set from raw names. Blank names are skipped and duplicates collapse.
func NewParticipantSet(names ...string) ParticipantSet {
	set := ParticipantSet{members: make(map[Participant]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		p := Participant(n)
		if _, dup := set.members[p]; dup {
			continue
		}
		set.members[p] = struct{}{}
		set.ordered = append(set.ordered, p)
	}
	return set
}

// Contains reports whether p belongs to the set.
func (s ParticipantSet) Contains(p Participant) bool {
	_, ok := s.members[p]
	return ok
}

// Len returns the number of participants.
func (s ParticipantSet) Len() int {
	return len(s.ordered)
}

// Members returns the participants in configuration order.
func (s ParticipantSet) Members() []Participant {
	out := make([]Participant, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// SortParticipants orders participants by their canonical key (the name).
func SortParticipants(ps []Participant) {
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
}
