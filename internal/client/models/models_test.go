package models

import (
	"testing"

	"github.com/dmitrijs2005/meuponto/internal/common"
	"github.com/dmitrijs2005/meuponto/internal/hours"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() User {
	return User{
		Username:    "ana",
		DisplayName: "Ana Souza",
		Email:       "ana@example.com",
		Password:    "secret1",
	}
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr string
	}{
		{name: "ok", mutate: func(u *User) {}},
		{name: "missing username", mutate: func(u *User) { u.Username = "" }, wantErr: "Username(required)"},
		{name: "missing name", mutate: func(u *User) { u.DisplayName = "" }, wantErr: "DisplayName(required)"},
		{name: "bad email", mutate: func(u *User) { u.Email = "nope" }, wantErr: "Email(email)"},
		{name: "short password", mutate: func(u *User) { u.Password = "123" }, wantErr: "Password(min)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(&u)
			err := u.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUser_Normalize(t *testing.T) {
	u := User{Username: "  Ana.Souza ", DisplayName: " Ana ", Email: " a@b.co ", Password: " secret1 "}
	u.Normalize()
	assert.Equal(t, User{Username: "ana.souza", DisplayName: "Ana", Email: "a@b.co", Password: " secret1 "}, u)
}

func TestUser_Apply(t *testing.T) {
	u := validUser()
	name := "Ana S."
	balance := -1.5

	got := u.Apply(UserPatch{DisplayName: &name, InitialHourBalance: &balance})

	want := validUser()
	want.DisplayName = "Ana S."
	want.InitialHourBalance = -1.5
	assert.Empty(t, cmp.Diff(want, got))
	assert.Equal(t, "Ana Souza", u.DisplayName, "receiver must not change")
}

func TestPonto_Clone(t *testing.T) {
	p := &Ponto{ID: "1", Day: "2024-01-15", Events: []string{"08:00"}}
	c := p.Clone()
	c.Events[0] = "09:00"
	assert.Equal(t, "08:00", p.Events[0])

	var nilPonto *Ponto
	assert.Nil(t, nilPonto.Clone())

	empty := (&Ponto{Day: "2024-01-15"}).Clone()
	assert.NotNil(t, empty.Events)
}

func TestClonePontosAndFindByDay(t *testing.T) {
	list := SamplePontos()
	c := ClonePontos(list)
	c[0].Events[0] = "00:00"
	assert.Equal(t, "08:00", list[0].Events[0])

	assert.Equal(t, 2, FindByDay(list, "2024-01-17"))
	assert.Equal(t, -1, FindByDay(list, "2024-02-01"))
	assert.NotNil(t, ClonePontos(nil))
}

func TestSampleData_IsConsistent(t *testing.T) {
	u := SampleUser()
	require.NoError(t, u.Validate())

	for _, p := range SamplePontos() {
		worked, err := hours.WorkedHours(p.Events)
		require.NoError(t, err)
		assert.InDelta(t, worked, p.TotalWorked, 1e-9, p.Day)
	}
}
