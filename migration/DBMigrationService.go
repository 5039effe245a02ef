// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package migration

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pg/pg/v10"
	log "github.com/sirupsen/logrus"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/db"
)

type DBMigrationService interface {
	Migrate() (int, int, error)
}

func NewDBMigrationService(cp db.ConnectionProvider) DBMigrationService {
	return &dbMigrationServiceImpl{cp: cp}
}

type dbMigrationServiceImpl struct {
	cp db.ConnectionProvider
}

// migrations are applied in order, each step in its own transaction.
// Never edit a released step, append a new one.
var migrations = []string{
	`create table user_data
	(
		user_id varchar not null,
		name varchar not null,
		email varchar not null,
		phone varchar null,
		password bytea null,
		role varchar null,
		PRIMARY KEY (user_id),
		UNIQUE (email)
	)`,
	`alter table user_data
		add column avatar_filename varchar null,
		add column avatar_updated_at timestamp without time zone null`,
	`create index user_data_avatar_filename_idx on user_data (avatar_filename) where avatar_filename is not null`,
}

func (d *dbMigrationServiceImpl) createSchemaMigrationsTable() error {
	_, err := d.cp.GetConnection().Exec(`
		create table if not exists schema_migrations
		(
			version integer not null,
			dirty boolean not null,
			PRIMARY KEY(version)
		)`)
	return err
}

func (d *dbMigrationServiceImpl) Migrate() (int, int, error) {
	log.Infof("Schema Migration: start")

	var currentVersion int
	_, err := d.cp.GetConnection().QueryOne(pg.Scan(&currentVersion), `SELECT version FROM schema_migrations`)
	if err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			err = d.createSchemaMigrationsTable()
			if err != nil {
				return 0, 0, fmt.Errorf("failed to create schema migrations table: %w", err)
			}
			_, err = d.cp.GetConnection().QueryOne(pg.Scan(&currentVersion), `SELECT version FROM schema_migrations`)
		}
		if err != nil && err != pg.ErrNoRows {
			return 0, 0, fmt.Errorf("failed to read schema migrations version: %w", err)
		}
	}

	newVersion := len(migrations)
	if currentVersion >= newVersion {
		log.Infof("Schema Migration: schema is up to date at version %d", currentVersion)
		return currentVersion, currentVersion, nil
	}

	ctx := context.Background()
	for step := currentVersion; step < newVersion; step++ {
		version := step + 1
		err := d.cp.GetConnection().RunInTransaction(ctx, func(tx *pg.Tx) error {
			if _, err := tx.Exec(migrations[step]); err != nil {
				return err
			}
			if _, err := tx.Exec(`DELETE FROM schema_migrations`); err != nil {
				return err
			}
			_, err := tx.Exec(`INSERT INTO schema_migrations (version, dirty) VALUES (?, false)`, version)
			return err
		})
		if err != nil {
			return currentVersion, version, fmt.Errorf("failed to apply schema migration %d: %w", version, err)
		}
		log.Infof("Schema Migration: applied version %d", version)
	}

	log.Infof("Schema Migration: finished at version %d", newVersion)
	return currentVersion, newVersion, nil
}
