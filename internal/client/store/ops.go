package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/meuponto/internal/client/models"
	"github.com/dmitrijs2005/meuponto/internal/common"
	"github.com/dmitrijs2005/meuponto/internal/hours"
	"golang.org/x/sync/errgroup"
)

// LoadAll reloads the user and every day record from storage, fills the
// "today" slot and recomputes the hour bank. Empty storage is not an error.
// IsLoading is true while it runs and false afterwards, whatever the outcome.
func (s *Store) LoadAll(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.loadAll(ctx)
}

func (s *Store) loadAll(ctx context.Context) error {
	s.Dispatch(SetLoading{Loading: true})
	defer s.Dispatch(SetLoading{Loading: false})

	var (
		user   *models.User
		pontos []models.Ponto
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.gateway.GetUser(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pontos, err = s.gateway.GetPontos(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "failed to load data", "error", err)
		return fmt.Errorf("failed to load data: %w", err)
	}

	var today *models.Ponto
	if i := models.FindByDay(pontos, s.Today()); i >= 0 {
		today = &pontos[i]
	}

	s.Dispatch(
		SetUser{User: user},
		SetPontos{Pontos: pontos},
		SetCurrentDayPonto{Ponto: today},
		CalculateBancoHoras{},
	)
	s.log.Debug(ctx, "data loaded", "has_user", user != nil, "pontos", len(pontos))
	return nil
}

// ClockIn appends the time of day of ts to the record of ts's day, creating
// the record on the first clock-in. It fails with ErrDailyLimitExceeded once
// the day holds hours.MaxDailyEvents events.
//
// Without a user profile ClockIn does nothing and returns (nil, nil).
func (s *Store) ClockIn(ctx context.Context, ts time.Time) (*models.Ponto, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	snap := s.Snapshot()
	if snap.User == nil {
		s.log.Warn(ctx, "clock-in ignored: no user profile")
		return nil, nil
	}

	day := hours.DayOf(ts)
	var current *models.Ponto
	if i := models.FindByDay(snap.Pontos, day); i >= 0 {
		current = &snap.Pontos[i]
	}
	if current == nil {
		current = &models.Ponto{ID: s.newID(), Day: day, Events: []string{}}
	}

	if !hours.CanClockIn(current.Events) {
		return nil, fmt.Errorf("%w: %s already has %d events", common.ErrDailyLimitExceeded, day, len(current.Events))
	}

	updated := current.Clone()
	updated.Events = append(updated.Events, hours.FormatClock(ts))
	worked, err := hours.WorkedHours(updated.Events)
	if err != nil {
		return nil, fmt.Errorf("failed to compute worked hours for %s: %w", day, err)
	}
	updated.TotalWorked = worked

	if err := s.gateway.UpsertPonto(ctx, *updated); err != nil {
		s.log.Error(ctx, "failed to save clock-in", "day", day, "error", err)
		return nil, fmt.Errorf("failed to save clock-in: %w", err)
	}

	s.commitPonto(*updated)
	s.log.Info(ctx, "clock-in saved", "day", day, "event", updated.Events[len(updated.Events)-1], "events", len(updated.Events))
	return updated.Clone(), nil
}

// EditDay replaces the events of an existing day record. The event cap of
// ClockIn is not applied here, and event order is not checked; callers
// validate input before calling in. Unknown days fail with ErrNotFound.
//
// Without a user profile EditDay does nothing and returns (nil, nil).
func (s *Store) EditDay(ctx context.Context, day string, events []string) (*models.Ponto, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	snap := s.Snapshot()
	if snap.User == nil {
		s.log.Warn(ctx, "edit ignored: no user profile", "day", day)
		return nil, nil
	}

	i := models.FindByDay(snap.Pontos, day)
	if i < 0 {
		return nil, fmt.Errorf("%w: no record for %s", common.ErrNotFound, day)
	}

	updated := snap.Pontos[i].Clone()
	updated.Events = slices.Clone(events)
	if updated.Events == nil {
		updated.Events = []string{}
	}
	worked, err := hours.WorkedHours(updated.Events)
	if err != nil {
		return nil, fmt.Errorf("failed to compute worked hours for %s: %w", day, err)
	}
	updated.TotalWorked = worked

	if err := s.gateway.UpsertPonto(ctx, *updated); err != nil {
		s.log.Error(ctx, "failed to save edit", "day", day, "error", err)
		return nil, fmt.Errorf("failed to save edit: %w", err)
	}

	s.commitPonto(*updated)
	s.log.Info(ctx, "day edited", "day", day, "events", len(updated.Events), "total_worked", worked)
	return updated.Clone(), nil
}

// DeleteDay removes the record of day from storage and state. Deleting a day
// without a record changes nothing and is not an error.
//
// Without a user profile DeleteDay does nothing.
func (s *Store) DeleteDay(ctx context.Context, day string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	snap := s.Snapshot()
	if snap.User == nil {
		s.log.Warn(ctx, "delete ignored: no user profile", "day", day)
		return nil
	}

	removed, err := s.gateway.DeletePonto(ctx, day)
	if err != nil {
		s.log.Error(ctx, "failed to delete day", "day", day, "error", err)
		return fmt.Errorf("failed to delete day: %w", err)
	}

	actions := []Action{RemovePonto{Day: day}}
	if day == s.Today() || (snap.CurrentDayPonto != nil && snap.CurrentDayPonto.Day == day) {
		actions = append(actions, SetCurrentDayPonto{Ponto: nil})
	}
	actions = append(actions, CalculateBancoHoras{})
	s.Dispatch(actions...)

	s.log.Info(ctx, "day deleted", "day", day, "removed", removed)
	return nil
}

// UpdateProfile merges patch into the current user, validates and persists
// the result, then commits it. Username cannot be changed.
func (s *Store) UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	snap := s.Snapshot()
	if snap.User == nil {
		return nil, common.ErrNoUser
	}

	merged := snap.User.Apply(patch)
	merged.Normalize()
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if err := s.gateway.SaveUser(ctx, merged); err != nil {
		s.log.Error(ctx, "failed to save profile", "error", err)
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.Dispatch(UpdateUser{Patch: normalizedPatch(patch, merged)}, CalculateBancoHoras{})
	s.log.Info(ctx, "profile updated", "username", merged.Username)
	return &merged, nil
}

// Onboard creates the local profile. It fails if one already exists.
func (s *Store) Onboard(ctx context.Context, user models.User) (*models.User, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.Snapshot().User != nil {
		return nil, fmt.Errorf("%w: profile already exists", common.ErrValidation)
	}

	user.Normalize()
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.gateway.SaveUser(ctx, user); err != nil {
		s.log.Error(ctx, "failed to save profile", "error", err)
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.Dispatch(SetUser{User: &user}, CalculateBancoHoras{})
	s.log.Info(ctx, "profile created", "username", user.Username)
	return &user, nil
}

// Reset erases all stored data and empties the state.
func (s *Store) Reset(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.gateway.ClearAll(ctx); err != nil {
		s.log.Error(ctx, "failed to clear data", "error", err)
		return fmt.Errorf("failed to reset: %w", err)
	}

	s.Dispatch(ResetState{})
	s.log.Info(ctx, "all data erased")
	return nil
}

// LoadSample replaces the stored data with the demo profile and week, then
// reloads.
func (s *Store) LoadSample(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.gateway.SaveUser(ctx, models.SampleUser()); err != nil {
		return fmt.Errorf("failed to load sample data: %w", err)
	}
	if err := s.gateway.SavePontos(ctx, models.SamplePontos()); err != nil {
		return fmt.Errorf("failed to load sample data: %w", err)
	}
	return s.loadAll(ctx)
}

// commitPonto puts a persisted record into the collection and, when it is
// today's or the today slot still holds its day, into the today slot, then
// recomputes the hour bank.
func (s *Store) commitPonto(p models.Ponto) {
	actions := []Action{UpsertPonto{Ponto: p}}
	slot := s.Snapshot().CurrentDayPonto
	if p.Day == s.Today() || (slot != nil && slot.Day == p.Day) {
		actions = append(actions, SetCurrentDayPonto{Ponto: &p})
	}
	actions = append(actions, CalculateBancoHoras{})
	s.Dispatch(actions...)
}

func normalizedPatch(patch models.UserPatch, merged models.User) models.UserPatch {
	var out models.UserPatch
	if patch.DisplayName != nil {
		out.DisplayName = &merged.DisplayName
	}
	if patch.Email != nil {
		out.Email = &merged.Email
	}
	if patch.Password != nil {
		out.Password = &merged.Password
	}
	if patch.InitialHourBalance != nil {
		out.InitialHourBalance = &merged.InitialHourBalance
	}
	return out
}
