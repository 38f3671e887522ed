package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"app:secret@tcp(db:3306)/desks?charset=utf8mb4&parseTime=true&loc=UTC",
		DSN("app", "secret", "db", "3306", "desks"))
	// empty password drops the colon entirely
	assert.Equal(t,
		"root@tcp(localhost:3306)/desks?charset=utf8mb4&parseTime=true&loc=UTC",
		DSN("root", "", "localhost", "3306", "desks"))
}

func TestPoolDefaults(t *testing.T) {
	p := Pool{}.withDefaults()
	assert.Equal(t, 25, p.MaxOpen)
	assert.Equal(t, 25, p.MaxIdle)
	assert.Equal(t, 30*time.Minute, p.ConnMaxLifetime)

	// idle pool follows a custom open limit when unset
	p = Pool{MaxOpen: 10}.withDefaults()
	assert.Equal(t, 10, p.MaxIdle)

	p = Pool{MaxOpen: 10, MaxIdle: 2, ConnMaxLifetime: time.Minute}.withDefaults()
	assert.Equal(t, Pool{MaxOpen: 10, MaxIdle: 2, ConnMaxLifetime: time.Minute}, p)
}
