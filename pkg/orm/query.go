// Package orm is a small fluent wrapper around gorm with a read-through
// cache hook. Repositories use it for the common query shapes; anything it
// does not cover drops down to database.DB directly.
package orm

import (
	"time"

	"github.com/shashiranjanraj/ecobazaar/pkg/cache"
	"github.com/shashiranjanraj/ecobazaar/pkg/database"
	"gorm.io/gorm"
)

type Query struct {
	db *gorm.DB
}

func DB() *Query {
	return &Query{db: database.DB}
}

// Tx wraps an existing transaction handle so repositories can run the same
// query shapes inside database.DB.Transaction callbacks.
func Tx(tx *gorm.DB) *Query {
	return &Query{db: tx}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count(n *int64) error {
	return q.db.Count(n).Error
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

func (q *Query) Delete(v interface{}) error {
	return q.db.Delete(v).Error
}

// Cache runs the query with a read-through Redis cache. On a hit dest is
// filled from the cache; on a miss the query runs and the result is stored
// under key for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	err := q.db.Find(dest).Error
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl)
	return nil
}
