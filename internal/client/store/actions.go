package store

import (
	"github.com/dmitrijs2005/meuponto/internal/client/models"
)

// Action is a synchronous state transition applied by Reduce.
type Action interface {
	isAction()
}

type (
	// SetUser replaces the user. nil clears it along with the hour bank.
	SetUser struct{ User *models.User }

	// UpdateUser merges a profile patch; ignored without a user.
	UpdateUser struct{ Patch models.UserPatch }

	// SetPontos replaces the whole collection.
	SetPontos struct{ Pontos []models.Ponto }

	// UpsertPonto replaces the record with the same Day or appends it.
	UpsertPonto struct{ Ponto models.Ponto }

	// RemovePonto drops the record for Day, if any.
	RemovePonto struct{ Day string }

	// SetCurrentDayPonto sets the "today" slot (nil clears it).
	SetCurrentDayPonto struct{ Ponto *models.Ponto }

	SetLoading struct{ Loading bool }

	// CalculateBancoHoras recomputes the hour bank; ignored without a user.
	CalculateBancoHoras struct{}

	// ResetState returns to an empty, loaded state.
	ResetState struct{}
)

func (SetUser) isAction()             {}
func (UpdateUser) isAction()          {}
func (SetPontos) isAction()           {}
func (UpsertPonto) isAction()         {}
func (RemovePonto) isAction()         {}
func (SetCurrentDayPonto) isAction()  {}
func (SetLoading) isAction()          {}
func (CalculateBancoHoras) isAction() {}
func (ResetState) isAction()          {}

// Reduce applies a to s and returns the new state. s is not modified; the
// result shares no slices with s or with the action payload.
func Reduce(s State, a Action) State {
	next := s.clone()

	switch a := a.(type) {
	case SetUser:
		if a.User == nil {
			next.User = nil
			next.BancoHoras = models.BancoHoras{}
		} else {
			u := *a.User
			next.User = &u
		}

	case UpdateUser:
		if next.User != nil {
			u := next.User.Apply(a.Patch)
			next.User = &u
		}

	case SetPontos:
		next.Pontos = models.ClonePontos(a.Pontos)

	case UpsertPonto:
		p := *a.Ponto.Clone()
		if i := models.FindByDay(next.Pontos, p.Day); i >= 0 {
			next.Pontos[i] = p
		} else {
			next.Pontos = append(next.Pontos, p)
		}

	case RemovePonto:
		filtered := next.Pontos[:0]
		for _, p := range next.Pontos {
			if p.Day != a.Day {
				filtered = append(filtered, p)
			}
		}
		next.Pontos = filtered

	case SetCurrentDayPonto:
		next.CurrentDayPonto = a.Ponto.Clone()

	case SetLoading:
		next.IsLoading = a.Loading

	case CalculateBancoHoras:
		if next.User != nil {
			next.BancoHoras = ComputeBancoHoras(*next.User, next.Pontos)
		}

	case ResetState:
		next = State{Pontos: []models.Ponto{}}
	}

	return next
}
