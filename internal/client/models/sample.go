package models

// SampleUser and SamplePontos are demo data for a fresh install: one
// working week from Monday 2024-01-15 to Friday 2024-01-19.
func SampleUser() User {
	return User{
		Username:           "joao.silva",
		DisplayName:        "João Silva",
		Email:              "joao.silva@empresa.com",
		Password:           "123456",
		InitialHourBalance: 2.5,
	}
}

func SamplePontos() []Ponto {
	return []Ponto{
		{ID: "1", Day: "2024-01-15", Events: []string{"08:00", "12:00", "13:00", "17:00"}, TotalWorked: 8.0},
		{ID: "2", Day: "2024-01-16", Events: []string{"08:15", "12:30", "13:15", "17:30"}, TotalWorked: 8.5},
		{ID: "3", Day: "2024-01-17", Events: []string{"08:00", "12:00", "13:00", "17:00"}, TotalWorked: 8.0},
		{ID: "4", Day: "2024-01-18", Events: []string{"08:30", "12:00", "13:00", "17:30"}, TotalWorked: 8.0},
		{ID: "5", Day: "2024-01-19", Events: []string{"08:00", "12:00", "13:00", "17:00"}, TotalWorked: 8.0},
	}
}
