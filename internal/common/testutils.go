package common

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestRabbitMQ(t *testing.T) string {
	ctx := context.Background()

	container, err := rabbitmq.Run(ctx, "rabbitmq:3.12.11-management-alpine", rabbitmq.WithAdminUsername("guest"), rabbitmq.WithAdminPassword("guest"))
	if err != nil {
		t.Fatalf("could not start rabbitmq container: %v", err)
	}

	connURL, err := container.AmqpURL(ctx)
	if err != nil {
		t.Fatalf("could not get rabbitmq connection URL: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("could not terminate container: %v", err)
		}
	})

	return connURL
}

// TestDB starts a Postgres container, applies the migrations found in migrations and
// returns a pooled connection to it.
func TestDB(migrations fs.FS, t *testing.T) *DB {
	ctx := context.Background()

	c, err := postgres.Run(ctx,
		"docker.io/postgres:14.11-bookworm",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(30*time.Second)))
	if err != nil {
		t.Fatalf("could not start postgres container: %v", err)
	}

	connURL, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	m, err := MigrateUp(migrations, connURL)
	if err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	db, err := NewDB(connURL, DBConfig{MaxOpenConns: 5, MaxIdleConns: 5, MaxIdleTime: time.Minute, ConnTimeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("could not open database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		m.Drop()
		c.Terminate(ctx)
	})

	return db
}

// TruncateTables empties the given tables between test cases.
func TruncateTables(t *testing.T, db *sql.DB, tables ...string) {
	t.Helper()

	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("could not truncate %s: %v", table, err)
		}
	}
}

// TestMongo starts a MongoDB container and returns a handle on a fresh database.
func TestMongo(t *testing.T) *mongo.Database {
	ctx := context.Background()

	c, err := mongodb.Run(ctx, "mongo:7.0.12")
	if err != nil {
		t.Fatalf("could not start mongodb container: %v", err)
	}

	uri, err := c.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	db, err := NewMongo(uri, "testdb", MongoConfig{MaxPoolSize: 5, ConnTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("could not connect to mongodb: %v", err)
	}

	t.Cleanup(func() {
		CloseMongo(db)
		c.Terminate(ctx)
	})

	return db
}
