package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/meuponto/internal/client/models"
	"github.com/dmitrijs2005/meuponto/internal/client/repositories/kv"
	"github.com/dmitrijs2005/meuponto/internal/common"
	"github.com/dmitrijs2005/meuponto/internal/dbx"
)

const (
	KeyUser   = "user"
	KeyPontos = "pontos"
)

// Gateway is the storage contract the application store depends on.
type Gateway interface {
	SaveUser(ctx context.Context, user models.User) error
	// GetUser returns (nil, nil) when no profile has been saved.
	GetUser(ctx context.Context) (*models.User, error)

	// SavePontos overwrites the whole collection.
	SavePontos(ctx context.Context, pontos []models.Ponto) error
	// GetPontos returns an empty, non-nil slice when nothing is stored.
	GetPontos(ctx context.Context) ([]models.Ponto, error)
	// UpsertPonto replaces the record with the same Day or appends it.
	UpsertPonto(ctx context.Context, ponto models.Ponto) error
	// DeletePonto removes the record for day and reports whether one existed.
	DeletePonto(ctx context.Context, day string) (bool, error)

	// ClearAll erases the user and all records.
	ClearAll(ctx context.Context) error
}

// SQLiteGateway implements Gateway on top of the kv repository.
type SQLiteGateway struct {
	db *sql.DB
}

func NewSQLiteGateway(db *sql.DB) *SQLiteGateway {
	return &SQLiteGateway{db: db}
}

func (g *SQLiteGateway) repo(db dbx.DBTX) kv.Repository {
	return kv.NewSQLiteRepository(db)
}

func (g *SQLiteGateway) SaveUser(ctx context.Context, user models.User) error {
	if err := putJSON(ctx, g.repo(g.db), KeyUser, user); err != nil {
		return fmt.Errorf("%w: failed to save user: %w", common.ErrStorage, err)
	}
	return nil
}

func (g *SQLiteGateway) GetUser(ctx context.Context) (*models.User, error) {
	var user models.User
	found, err := getJSON(ctx, g.repo(g.db), KeyUser, &user)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user: %w", common.ErrStorage, err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (g *SQLiteGateway) SavePontos(ctx context.Context, pontos []models.Ponto) error {
	if err := savePontos(ctx, g.repo(g.db), pontos); err != nil {
		return fmt.Errorf("%w: failed to save pontos: %w", common.ErrStorage, err)
	}
	return nil
}

func (g *SQLiteGateway) GetPontos(ctx context.Context) ([]models.Ponto, error) {
	pontos, err := loadPontos(ctx, g.repo(g.db))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get pontos: %w", common.ErrStorage, err)
	}
	return pontos, nil
}

func (g *SQLiteGateway) UpsertPonto(ctx context.Context, ponto models.Ponto) error {
	err := dbx.WithTx(ctx, g.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := g.repo(tx)
		pontos, err := loadPontos(ctx, repo)
		if err != nil {
			return err
		}
		if i := models.FindByDay(pontos, ponto.Day); i >= 0 {
			pontos[i] = ponto
		} else {
			pontos = append(pontos, ponto)
		}
		return savePontos(ctx, repo, pontos)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to upsert ponto %s: %w", common.ErrStorage, ponto.Day, err)
	}
	return nil
}

func (g *SQLiteGateway) DeletePonto(ctx context.Context, day string) (bool, error) {
	var removed bool
	err := dbx.WithTx(ctx, g.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := g.repo(tx)
		pontos, err := loadPontos(ctx, repo)
		if err != nil {
			return err
		}
		filtered := pontos[:0]
		for _, p := range pontos {
			if p.Day == day {
				removed = true
				continue
			}
			filtered = append(filtered, p)
		}
		return savePontos(ctx, repo, filtered)
	})
	if err != nil {
		return false, fmt.Errorf("%w: failed to delete ponto %s: %w", common.ErrStorage, day, err)
	}
	return removed, nil
}

func (g *SQLiteGateway) ClearAll(ctx context.Context) error {
	if err := g.repo(g.db).Clear(ctx); err != nil {
		return fmt.Errorf("%w: failed to clear data: %w", common.ErrStorage, err)
	}
	return nil
}

func loadPontos(ctx context.Context, repo kv.Repository) ([]models.Ponto, error) {
	var pontos []models.Ponto
	if _, err := getJSON(ctx, repo, KeyPontos, &pontos); err != nil {
		return nil, err
	}
	if pontos == nil {
		pontos = []models.Ponto{}
	}
	for i := range pontos {
		if pontos[i].Events == nil {
			pontos[i].Events = []string{}
		}
	}
	return pontos, nil
}

func savePontos(ctx context.Context, repo kv.Repository, pontos []models.Ponto) error {
	if pontos == nil {
		pontos = []models.Ponto{}
	}
	return putJSON(ctx, repo, KeyPontos, pontos)
}

func getJSON(ctx context.Context, repo kv.Repository, key string, dst any) (bool, error) {
	data, err := repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func putJSON(ctx context.Context, repo kv.Repository, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return repo.Set(ctx, key, data)
}
