package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/meuponto/internal/client/models"
	"github.com/dmitrijs2005/meuponto/internal/client/store"
	"github.com/dmitrijs2005/meuponto/internal/hours"
)

// Progress thresholds of a day, in percent of its target.
const (
	goalReached = 100.0
	goalNear    = 75.0
)

func eventKind(i int) string {
	if i%2 == 0 {
		return "entry"
	}
	return "exit"
}

func dayStatus(progress float64) string {
	switch {
	case progress >= goalReached:
		return "goal reached"
	case progress >= goalNear:
		return "almost there"
	default:
		return "below goal"
	}
}

func signed(h float64) string {
	s := hours.ToHHMM(h)
	if h >= 0 {
		return "+" + s
	}
	return s
}

func firstName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return name
}

// renderStatus prints the dashboard: greeting, today's timeline with its
// progress, and the hour bank.
func renderStatus(w io.Writer, st store.State, now time.Time) {
	if st.IsLoading {
		fmt.Fprintln(w, "Loading...")
		return
	}
	if st.User == nil {
		fmt.Fprintln(w, "No profile configured. Run 'init' to create one.")
		return
	}

	fmt.Fprintf(w, "Hello, %s!\n", firstName(st.User.DisplayName))
	fmt.Fprintf(w, "%s\n\n", now.Format("Monday, 2006-01-02"))

	target := hours.DailyTarget(now)
	var events []string
	worked := 0.0
	if st.CurrentDayPonto != nil && st.CurrentDayPonto.Day == hours.DayOf(now) {
		events = st.CurrentDayPonto.Events
		worked = st.CurrentDayPonto.TotalWorked
	}
	progress, err := hours.ProgressPercent(events, target)
	if err != nil {
		progress = worked / target * 100
	}

	state := "active"
	if !hours.CanClockIn(events) {
		state = "limit reached"
	}
	fmt.Fprintf(w, "Today (%s): %.1f%% of %gh goal\n", state, progress, target)
	fmt.Fprintf(w, "  worked %s / %s\n", hours.ToHHMM(worked), hours.ToHHMM(target))
	if len(events) == 0 {
		fmt.Fprintln(w, "  no clock-ins yet today")
	}
	for i, ev := range events {
		fmt.Fprintf(w, "  %d. %s  %s\n", i+1, ev, eventKind(i))
	}
	if len(events) > 0 && len(events)%2 == 0 {
		fmt.Fprintln(w, "  done for now")
	}

	b := st.BancoHoras
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Hour bank: %s\n", signed(b.CurrentBalance))
	fmt.Fprintf(w, "  initial  %s\n", signed(b.InitialBalance))
	fmt.Fprintf(w, "  worked   %s\n", hours.FormatDuration(b.TotalWorked))
	fmt.Fprintf(w, "  expected %s\n", hours.FormatDuration(b.TotalExpected))
}

// renderHistory prints day records newest first. limit <= 0 prints all.
func renderHistory(w io.Writer, pontos []models.Ponto, limit int) {
	if len(pontos) == 0 {
		fmt.Fprintln(w, "No records yet.")
		return
	}

	sorted := models.ClonePontos(pontos)
	slices.SortFunc(sorted, func(a, b models.Ponto) int {
		return strings.Compare(b.Day, a.Day)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	for _, p := range sorted {
		target := hours.DailyTargetForDay(p.Day)
		progress := p.TotalWorked / target * 100
		weekday := ""
		if d, err := time.ParseInLocation(hours.DayLayout, p.Day, time.Local); err == nil {
			weekday = d.Weekday().String()
		}

		fmt.Fprintf(w, "%s %-9s  %s\n", p.Day, weekday, dayStatus(progress))
		fmt.Fprintf(w, "  %.2fh / %gh (%.1f%%)\n", p.TotalWorked, target, progress)
		fmt.Fprintf(w, "  events (%d/%d): ", len(p.Events), hours.MaxDailyEvents)
		if len(p.Events) == 0 {
			fmt.Fprintln(w, "none")
			continue
		}
		fmt.Fprintln(w, strings.Join(p.Events, " "))
	}
}
