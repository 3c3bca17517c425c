// Package store picks the user store named by DATABASE_URL.
package store

import (
	"context"
	"io"
	"strings"

	"github.com/jrsteele09/go-api-skeleton/users"
	fakeuserrepo "github.com/jrsteele09/go-api-skeleton/users/repofake"
	"github.com/jrsteele09/go-api-skeleton/users/sqlrepo"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// MemoryURL selects the in-process store. Nothing survives a restart.
const MemoryURL = "memory://"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the user store for url and the handle that releases it.
// With migrate set, SQL schemas are brought up to date first.
func Open(ctx context.Context, url string, migrate bool) (users.UserRepo, io.Closer, error) {
	if strings.HasPrefix(url, MemoryURL) {
		log.Warn().Msg("using in-memory user store")
		return fakeuserrepo.NewFakeUserRepo(), nopCloser{}, nil
	}

	db, dialect, err := sqlrepo.Open(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	if migrate {
		if err := sqlrepo.Migrate(ctx, db, dialect); err != nil {
			_ = db.Close()
			return nil, nil, errors.Wrap(err, "store.Open Migrate")
		}
	}
	log.Info().Str("dialect", string(dialect)).Msg("user store opened")
	return sqlrepo.New(db, dialect), db, nil
}
