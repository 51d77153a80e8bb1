package types

import (
	"slices"
	"time"
)

// EnergyLevel classifies a member's energy during a daily time window.
type EnergyLevel string

// Energy levels used by preference-aware availability scoring.
const (
	EnergyHigh EnergyLevel = "high"
	EnergyLow  EnergyLevel = "low"
)

// ClockRange is a recurring daily time window expressed in whole hours.
//
// StartHour is inclusive and EndHour exclusive, both in [0, 24].
type ClockRange struct {
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
}

// Contains reports whether the hour of t falls inside the range.
func (r ClockRange) Contains(t time.Time) bool {
	h := t.Hour()

	return h >= r.StartHour && h < r.EndHour
}

// Period is an absolute time interval. Start is inclusive, End exclusive.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Overlaps reports whether two periods share any instant.
func (p Period) Overlaps(q Period) bool {
	return p.Start.Before(q.End) && q.Start.Before(p.End)
}

// EnergyPattern declares a member's energy level during a daily window.
type EnergyPattern struct {
	Level  EnergyLevel `json:"level"`
	Window ClockRange  `json:"window"`
}

// MemberPreferences holds a member's rotation preferences.
//
// All fields are optional; zero values mean "no stated preference" and the
// engine substitutes the centralized defaults (see defaults.go).
type MemberPreferences struct {
	PreferredChoreTypes   []string        `json:"preferredChoreTypes,omitempty"`
	DislikedChoreTypes    []string        `json:"dislikedChoreTypes,omitempty"`
	PreferredDifficulties []Difficulty    `json:"preferredDifficulties,omitempty"`
	MaxChoresPerWeek      int             `json:"maxChoresPerWeek,omitempty"`
	MaxChoresPerDay       int             `json:"maxChoresPerDay,omitempty"`
	PreferredDaysOfWeek   []time.Weekday  `json:"preferredDaysOfWeek,omitempty"`
	PreferredTimeRanges   []ClockRange    `json:"preferredTimeRanges,omitempty"`
	UnavailabilityPeriods []Period        `json:"unavailabilityPeriods,omitempty"`
	SkillCertifications   []string        `json:"skillCertifications,omitempty"`
	EnergyPatterns        []EnergyPattern `json:"energyPatterns,omitempty"`
}

// Member is a family member eligible for chore assignment.
//
// Members are owned by the caller's member directory and are read-only to
// the engine.
type Member struct {
	ID          string            `json:"id"`
	Name        string            `json:"name,omitempty"`
	Active      bool              `json:"active"`
	Preferences MemberPreferences `json:"preferences"`
}

// PrefersChoreType reports whether the member lists choreType as preferred.
func (m *Member) PrefersChoreType(choreType string) bool {
	return slices.Contains(m.Preferences.PreferredChoreTypes, choreType)
}

// DislikesChoreType reports whether the member lists choreType as disliked.
func (m *Member) DislikesChoreType(choreType string) bool {
	return slices.Contains(m.Preferences.DislikedChoreTypes, choreType)
}

// PrefersDifficulty reports whether the member prefers the given difficulty.
func (m *Member) PrefersDifficulty(d Difficulty) bool {
	return slices.Contains(m.Preferences.PreferredDifficulties, d)
}

// HasSkill reports whether the member holds the given skill certification.
func (m *Member) HasSkill(skill string) bool {
	return slices.Contains(m.Preferences.SkillCertifications, skill)
}

// HasAllSkills reports whether the member holds every listed skill.
// An empty skill list is trivially satisfied.
func (m *Member) HasAllSkills(skills []string) bool {
	for _, s := range skills {
		if !m.HasSkill(s) {
			return false
		}
	}

	return true
}

// SkillMatchRatio returns the fraction of skills the member holds,
// in [0, 1]. Returns 1 when no skills are required.
func (m *Member) SkillMatchRatio(skills []string) float64 {
	if len(skills) == 0 {
		return 1
	}
	matched := 0
	for _, s := range skills {
		if m.HasSkill(s) {
			matched++
		}
	}

	return float64(matched) / float64(len(skills))
}

// PrefersDay reports whether the member prefers chores on the weekday of t.
func (m *Member) PrefersDay(t time.Time) bool {
	return slices.Contains(m.Preferences.PreferredDaysOfWeek, t.Weekday())
}

// PrefersTimeOf reports whether t falls inside any preferred daily window.
func (m *Member) PrefersTimeOf(t time.Time) bool {
	for _, r := range m.Preferences.PreferredTimeRanges {
		if r.Contains(t) {
			return true
		}
	}

	return false
}

// UnavailableAt reports whether t falls inside an explicit unavailability period.
func (m *Member) UnavailableAt(t time.Time) bool {
	for _, p := range m.Preferences.UnavailabilityPeriods {
		if p.Contains(t) {
			return true
		}
	}

	return false
}

// EnergyAt returns the declared energy level covering t, or "" when none applies.
func (m *Member) EnergyAt(t time.Time) EnergyLevel {
	for _, p := range m.Preferences.EnergyPatterns {
		if p.Window.Contains(t) {
			return p.Level
		}
	}

	return ""
}
