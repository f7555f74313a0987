package models

import "slices"

// Ponto is the clock record of one calendar day. Day ("YYYY-MM-DD") is the
// natural key; Events are "HH:MM" strings alternating entry and exit.
// TotalWorked is derived from Events and stored alongside them.
type Ponto struct {
	ID          string   `json:"id"`
	Day         string   `json:"day"`
	Events      []string `json:"events"`
	TotalWorked float64  `json:"total_worked"`
}

// Clone returns a deep copy.
func (p *Ponto) Clone() *Ponto {
	if p == nil {
		return nil
	}
	c := *p
	c.Events = slices.Clone(p.Events)
	if c.Events == nil {
		c.Events = []string{}
	}
	return &c
}

// ClonePontos deep-copies a collection, never returning nil.
func ClonePontos(list []Ponto) []Ponto {
	out := make([]Ponto, len(list))
	for i := range list {
		out[i] = *list[i].Clone()
	}
	return out
}

// FindByDay returns the index of the record for day, or -1.
func FindByDay(list []Ponto, day string) int {
	return slices.IndexFunc(list, func(p Ponto) bool { return p.Day == day })
}
