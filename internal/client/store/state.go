package store

import (
	"github.com/dmitrijs2005/meuponto/internal/client/models"
	"github.com/dmitrijs2005/meuponto/internal/hours"
)

// State is the snapshot the presentation layer renders.
type State struct {
	User            *models.User
	Pontos          []models.Ponto
	CurrentDayPonto *models.Ponto
	BancoHoras      models.BancoHoras
	IsLoading       bool
}

// initialState is loading until the first LoadAll completes.
func initialState() State {
	return State{Pontos: []models.Ponto{}, IsLoading: true}
}

func (s State) clone() State {
	c := s
	if s.User != nil {
		u := *s.User
		c.User = &u
	}
	c.Pontos = models.ClonePontos(s.Pontos)
	c.CurrentDayPonto = s.CurrentDayPonto.Clone()
	return c
}

// ComputeBancoHoras derives the hour bank of user over pontos.
func ComputeBancoHoras(user models.User, pontos []models.Ponto) models.BancoHoras {
	var worked, expected float64
	for _, p := range pontos {
		worked += p.TotalWorked
		expected += hours.DailyTargetForDay(p.Day)
	}
	return models.BancoHoras{
		InitialBalance: user.InitialHourBalance,
		TotalWorked:    worked,
		TotalExpected:  expected,
		CurrentBalance: user.InitialHourBalance + worked - expected,
	}
}
