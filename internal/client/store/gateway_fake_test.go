package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/meuponto/internal/client/models"
	"github.com/dmitrijs2005/meuponto/internal/common"
)

var errInjected = errors.New("injected failure")

// fakeGateway keeps documents in memory. Setting fail[name] makes the
// matching method return errInjected wrapped in common.ErrStorage.
type fakeGateway struct {
	mu     sync.Mutex
	user   *models.User
	pontos []models.Ponto
	fail   map[string]bool
	calls  map[string]int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		pontos: []models.Ponto{},
		fail:   map[string]bool{},
		calls:  map[string]int{},
	}
}

func (f *fakeGateway) check(name string) error {
	f.calls[name]++
	if f.fail[name] {
		return fmt.Errorf("%w: %s: %w", common.ErrStorage, name, errInjected)
	}
	return nil
}

func (f *fakeGateway) setFail(name string, v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[name] = v
}

func (f *fakeGateway) storedPontos() []models.Ponto {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.ClonePontos(f.pontos)
}

func (f *fakeGateway) storedUser() *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user == nil {
		return nil
	}
	u := *f.user
	return &u
}

func (f *fakeGateway) SaveUser(_ context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("SaveUser"); err != nil {
		return err
	}
	f.user = &user
	return nil
}

func (f *fakeGateway) GetUser(context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("GetUser"); err != nil {
		return nil, err
	}
	if f.user == nil {
		return nil, nil
	}
	u := *f.user
	return &u, nil
}

func (f *fakeGateway) SavePontos(_ context.Context, pontos []models.Ponto) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("SavePontos"); err != nil {
		return err
	}
	f.pontos = models.ClonePontos(pontos)
	return nil
}

func (f *fakeGateway) GetPontos(context.Context) ([]models.Ponto, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("GetPontos"); err != nil {
		return nil, err
	}
	return models.ClonePontos(f.pontos), nil
}

func (f *fakeGateway) UpsertPonto(_ context.Context, ponto models.Ponto) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("UpsertPonto"); err != nil {
		return err
	}
	p := *ponto.Clone()
	if i := models.FindByDay(f.pontos, p.Day); i >= 0 {
		f.pontos[i] = p
	} else {
		f.pontos = append(f.pontos, p)
	}
	return nil
}

func (f *fakeGateway) DeletePonto(_ context.Context, day string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("DeletePonto"); err != nil {
		return false, err
	}
	i := models.FindByDay(f.pontos, day)
	if i < 0 {
		return false, nil
	}
	f.pontos = append(f.pontos[:i:i], f.pontos[i+1:]...)
	return true, nil
}

func (f *fakeGateway) ClearAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("ClearAll"); err != nil {
		return err
	}
	f.user = nil
	f.pontos = []models.Ponto{}
	return nil
}
