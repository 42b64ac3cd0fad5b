package seeder_test

import (
	postgres "github.com/heartmarshall/hanzi-ids/internal/adapter/postgres"
	"github.com/heartmarshall/hanzi-ids/internal/adapter/postgres/character"
	"github.com/heartmarshall/hanzi-ids/internal/app/seeder"
)

// Compile-time checks for the pipeline's adapter contracts.
var (
	_ seeder.CharacterBulkRepo = (*character.Repo)(nil)
	_ seeder.TxRunner          = (*postgres.TxManager)(nil)
)
