package main

import (
	"errors"

	"github.com/Kaljurand/aceview-sub001/storage/sqlite/zombiezen"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Pool keeps one SQLite pool per database file, so that docs and lexicon
// can share a file.
type Pool struct {
	pools map[string]*sqlitex.Pool
}

// Open returns the pool of path and makes sure the schemas exist.
func (p *Pool) Open(path string, schemas ...string) (*sqlitex.Pool, error) {
	if pool, ok := p.pools[path]; ok {
		for _, s := range schemas {
			if err := zombiezen.CreateSchemas(pool, s); err != nil {
				return nil, err
			}
		}
		return pool, nil
	}

	pool, err := zombiezen.NewPool(path, schemas...)
	if err != nil {
		return nil, err
	}
	if p.pools == nil {
		p.pools = map[string]*sqlitex.Pool{}
	}
	p.pools[path] = pool
	return pool, nil
}

func (p *Pool) Close() error {
	var errs []error
	for path, pool := range p.pools {
		errs = append(errs, pool.Close())
		delete(p.pools, path)
	}
	return errors.Join(errs...)
}
