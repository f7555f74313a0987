package cli

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/meuponto/internal/client/models"
	"github.com/dmitrijs2005/meuponto/internal/common"
	"github.com/dmitrijs2005/meuponto/internal/hours"
)

var (
	errNoProfile = fmt.Errorf("%w: run 'init' first", common.ErrNoUser)
	errCancelled = errors.New("cancelled")

	eventPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Init runs the onboarding questionnaire and creates the profile.
func (a *App) Init(ctx context.Context) error {
	if a.hasUser() {
		fmt.Fprintln(a.out, "A profile already exists. Use 'profile' to change it or 'reset' to start over.")
		return nil
	}

	fmt.Fprintln(a.out, "Let's set up your profile.")
	var u models.User
	var err error
	if u.Username, err = GetSimpleText(a.in, "Username", a.out); err != nil {
		return err
	}
	if u.DisplayName, err = GetSimpleText(a.in, "Full name", a.out); err != nil {
		return err
	}
	if u.Email, err = GetSimpleText(a.in, "E-mail", a.out); err != nil {
		return err
	}
	if u.Password, err = a.askPassword("Password (min 6 characters)"); err != nil {
		return err
	}
	if u.InitialHourBalance, err = a.askBalance("Initial hour balance, HH:MM or -HH:MM", 0); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	created, err := a.store.Onboard(ctx, u)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile created. Welcome, %s!\n", firstName(created.DisplayName))
	return nil
}

// ClockIn records an event at ts.
func (a *App) ClockIn(ctx context.Context, ts time.Time) error {
	if !a.hasUser() {
		return errNoProfile
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.store.ClockIn(ctx, ts)
	if err != nil {
		return err
	}
	if p == nil {
		return errNoProfile
	}

	last := len(p.Events) - 1
	fmt.Fprintf(a.out, "%s %s recorded on %s (%d/%d), worked %s\n",
		eventKind(last), p.Events[last], p.Day, len(p.Events), hours.MaxDailyEvents, hours.ToHHMM(p.TotalWorked))
	return nil
}

func (a *App) Status(context.Context) error {
	renderStatus(a.out, a.store.Snapshot(), a.now())
	return nil
}

func (a *App) History(_ context.Context, limit int) error {
	if !a.hasUser() {
		return errNoProfile
	}
	renderHistory(a.out, a.store.Snapshot().Pontos, limit)
	return nil
}

// Edit replaces the events of day after checking their format and count.
func (a *App) Edit(ctx context.Context, day string, events []string) error {
	if !a.hasUser() {
		return errNoProfile
	}
	if err := validateDay(day); err != nil {
		return err
	}
	if err := validateEvents(events); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.store.EditDay(ctx, day, events)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s updated: %s, worked %s\n", p.Day, strings.Join(p.Events, " "), hours.ToHHMM(p.TotalWorked))
	return nil
}

// Delete removes the record of day, asking first unless force is set.
func (a *App) Delete(ctx context.Context, day string, force bool) error {
	if !a.hasUser() {
		return errNoProfile
	}
	if err := validateDay(day); err != nil {
		return err
	}
	if !force {
		ok, err := GetConfirmation(a.in, fmt.Sprintf("Delete every event of %s?", day), a.out)
		if err != nil {
			return err
		}
		if !ok {
			return errCancelled
		}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.store.DeleteDay(ctx, day); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s deleted\n", day)
	return nil
}

// Profile shows the profile and lets the user change it. Empty answers keep
// the current values; the username cannot change.
func (a *App) Profile(ctx context.Context) error {
	snap := a.store.Snapshot()
	if snap.User == nil {
		return errNoProfile
	}
	u := *snap.User

	fmt.Fprintf(a.out, "Username: %s (cannot be changed)\n", u.Username)

	name, err := GetTextWithDefault(a.in, "Full name", u.DisplayName, a.out)
	if err != nil {
		return err
	}
	email, err := GetTextWithDefault(a.in, "E-mail", u.Email, a.out)
	if err != nil {
		return err
	}
	password, err := a.askPassword("New password (empty keeps the current one)")
	if err != nil {
		return err
	}
	balance, err := a.askBalance("Initial hour balance", u.InitialHourBalance)
	if err != nil {
		return err
	}

	patch := models.UserPatch{
		DisplayName:        &name,
		Email:              &email,
		InitialHourBalance: &balance,
	}
	if password != "" {
		patch.Password = &password
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if _, err := a.store.UpdateProfile(ctx, patch); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

// Reset erases all local data, asking first unless force is set.
func (a *App) Reset(ctx context.Context, force bool) error {
	if !force {
		ok, err := GetConfirmation(a.in, "Erase the profile and every record? This cannot be undone.", a.out)
		if err != nil {
			return err
		}
		if !ok {
			return errCancelled
		}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.store.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "All data erased.")
	return nil
}

// Demo replaces local data with the sample profile and week.
func (a *App) Demo(ctx context.Context, force bool) error {
	if a.hasUser() && !force {
		ok, err := GetConfirmation(a.in, "Replace the current data with demo data?", a.out)
		if err != nil {
			return err
		}
		if !ok {
			return errCancelled
		}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.store.LoadSample(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Demo data loaded.")
	return nil
}

func (a *App) askPassword(prompt string) (string, error) {
	if !a.ttyPassword {
		return GetSecretText(a.in, prompt, a.out)
	}
	pw, err := GetPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer clear(pw)
	return strings.TrimRight(string(pw), "\r\n"), nil
}

func (a *App) askBalance(prompt string, current float64) (float64, error) {
	for {
		answer, err := GetTextWithDefault(a.in, prompt, hours.ToHHMM(current), a.out)
		if err != nil {
			return 0, err
		}
		v, err := hours.ParseBalance(answer)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(a.out, "Use the format HH:MM, e.g. 02:30 or -01:15")
	}
}

// clockTime resolves the moment of a clock-in from optional "YYYY-MM-DD"
// and "HH:MM" overrides of now.
func clockTime(now time.Time, date, at string) (time.Time, error) {
	if date == "" && at == "" {
		return now, nil
	}
	if date == "" {
		date = hours.DayOf(now)
	}
	if at == "" {
		at = hours.FormatClock(now)
	}
	if err := validateDay(date); err != nil {
		return time.Time{}, err
	}
	if err := validateEvents([]string{at}); err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation(hours.DayLayout+" "+hours.ClockLayout, date+" "+at, time.Local)
}

func validateDay(day string) error {
	if _, err := time.ParseInLocation(hours.DayLayout, day, time.Local); err != nil {
		return fmt.Errorf("%w: day %q, use YYYY-MM-DD", common.ErrFormat, day)
	}
	return nil
}

func validateEvents(events []string) error {
	if len(events) > hours.MaxDailyEvents {
		return fmt.Errorf("%w: at most %d events per day", common.ErrDailyLimitExceeded, hours.MaxDailyEvents)
	}
	for _, ev := range events {
		if !eventPattern.MatchString(ev) {
			return fmt.Errorf("%w: event %q, use HH:MM (e.g. 08:30)", common.ErrFormat, ev)
		}
		if _, err := time.Parse(hours.ClockLayout, ev); err != nil {
			return fmt.Errorf("%w: event %q is not a time of day", common.ErrFormat, ev)
		}
	}
	return nil
}
