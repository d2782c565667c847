package database

import (
	"context"
	"os"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	_ "github.com/joho/godotenv/autoload"

	"github.com/boardgamehq/monopoly-engine/app/models"
)

func PostgreSQLConnection() *pg.DB {
	return pg.Connect(&pg.Options{
		User:     os.Getenv("DB_USER"),
		Addr:     os.Getenv("DB_ADDR"),
		Password: os.Getenv("DB_PASSWORD"),
		Database: os.Getenv("DB_NAME"),
	})
}

// CreateSchema creates the tables the engine persists into, if missing.
func CreateSchema(ctx context.Context, db *pg.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Game)(nil),
		(*models.Player)(nil),
		(*models.Deed)(nil),
		(*models.Railroad)(nil),
		(*models.CallbackRegistration)(nil),
	}

	for _, table := range tables {
		err := db.ModelContext(ctx, table).CreateTable(&orm.CreateTableOptions{
			IfNotExists: true,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
