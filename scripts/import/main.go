package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/agora-forum/agora/internal/storage/postgres"
)

var opts = struct {
	Dump               string `long:"dump" env:"DUMP" default:"posts.json" description:"path to posts dump, a json array or one document per line"`
	Postgres           string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMigrations string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`
	SkipInvalid        bool   `long:"skip-invalid" env:"SKIP_INVALID" description:"skip documents failed to convert instead of stopping"`
}{}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "import"
	parser.LongDescription = "Posts dump to database importer"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	logrus.Info("import started")
	logrus.Infof("%+v", opts)

	f, err := os.Open(opts.Dump)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open dump")
	}
	defer f.Close() // nolint:errcheck

	s := postgres.New(mustGetDB())

	var imported, skipped int
	err = readDocuments(f, func(d document) error {
		l := logrus.WithField("id", d.ID)

		p, err := d.toPost()
		if err != nil {
			if opts.SkipInvalid {
				l.WithError(err).Warn("skip document")
				skipped++
				return nil
			}
			return fmt.Errorf("failed to convert document %s: %w", d.ID, err)
		}

		if d.Metadata.Likes > 0 {
			l.Warnf("%d likes without likers are dropped", d.Metadata.Likes)
		}

		if err := s.SavePost(context.Background(), p); err != nil {
			return fmt.Errorf("failed to put post %s into db: %w", d.ID, err)
		}

		imported++
		if imported%20 == 0 {
			logrus.Infof("%d posts imported", imported)
		}

		return nil
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to import posts")
	}

	logrus.Infof("done: %d imported, %d skipped", imported, skipped)
}

// readDocuments calls f for every document of json array or json lines stream.
func readDocuments(r io.Reader, f func(d document) error) error {
	br := bufio.NewReader(r)

	array, err := startsWithArray(br)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(br)
	if array {
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("failed to read dump: %w", err)
		}
	}

	for {
		if array && !dec.More() {
			return nil
		}

		var d document
		if err := dec.Decode(&d); err != nil {
			if errors.Is(err, io.EOF) && !array {
				return nil
			}
			return fmt.Errorf("failed to decode document: %w", err)
		}

		if err := f(d); err != nil {
			return err
		}
	}
}

func startsWithArray(br *bufio.Reader) (bool, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, fmt.Errorf("failed to read dump: %w", err)
		}

		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := br.ReadByte(); err != nil {
				return false, err
			}
		default:
			return b[0] == '[', nil
		}
	}
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}

	if err := db.PingContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	driver, err := migratep.WithInstance(db, &migratep.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create database migrate driver")
	}

	migrator, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", opts.PostgresMigrations), "postgres", driver)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}

	switch err := migrator.Up(); err {
	case nil:
		logrus.Info("database was migrated")
	case migrate.ErrNoChange:
		logrus.Info("database is up-to-date")
	default:
		logrus.WithError(err).Fatal("failed to migrate db")
	}

	return db
}
