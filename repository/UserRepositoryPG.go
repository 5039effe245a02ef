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

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/db"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/entity"
)

func NewUserRepositoryPG(cp db.ConnectionProvider) (UserRepository, error) {
	return &userRepositoryImpl{cp: cp}, nil
}

type userRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (u userRepositoryImpl) GetUserById(userId string) (*entity.UserEntity, error) {
	result := new(entity.UserEntity)
	err := u.cp.GetConnection().Model(result).
		Where("user_id = ?", userId).
		First()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

func (u userRepositoryImpl) GetUserByEmail(email string) (*entity.UserEntity, error) {
	result := new(entity.UserEntity)
	err := u.cp.GetConnection().Model(result).
		Where("email = ?", strings.ToLower(email)).
		First()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

func (u userRepositoryImpl) SaveInternalUser(user *entity.UserEntity) (bool, error) {
	result, err := u.cp.GetConnection().Model(user).
		OnConflict("(email) DO NOTHING").
		Insert()
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (u userRepositoryImpl) UpdateUserPassword(userId string, password []byte) error {
	ent := new(entity.UserEntity)
	_, err := u.cp.GetConnection().Model(ent).
		Set("password = ?", password).
		Where("user_id = ?", userId).
		Update()
	return err
}

func (u userRepositoryImpl) UpdateUserRole(userId string, role string) error {
	ent := new(entity.UserEntity)
	_, err := u.cp.GetConnection().Model(ent).
		Set("role = ?", role).
		Where("user_id = ?", userId).
		Update()
	return err
}

func (u userRepositoryImpl) UpdateUserAvatar(userId string, filename string, updatedAt time.Time) (string, error) {
	var previousFilename string
	ctx := context.Background()
	err := u.cp.GetConnection().RunInTransaction(ctx, func(tx *pg.Tx) error {
		ent := new(entity.UserEntity)
		err := tx.Model(ent).
			Where("user_id = ?", userId).
			For("UPDATE").
			Select()
		if err != nil {
			if err == pg.ErrNoRows {
				return fmt.Errorf("user %s not found", userId)
			}
			return err
		}
		previousFilename = ent.AvatarFilename
		_, err = tx.Model(ent).
			Set("avatar_filename = ?", filename).
			Set("avatar_updated_at = ?", updatedAt).
			Where("user_id = ?", userId).
			Update()
		return err
	})
	if err != nil {
		return "", err
	}
	return previousFilename, nil
}

func (u userRepositoryImpl) GetReferencedAvatarFilenames() ([]string, error) {
	var filenames []string
	err := u.cp.GetConnection().Model((*entity.UserEntity)(nil)).
		Column("avatar_filename").
		Where("avatar_filename IS NOT NULL").
		Select(&filenames)
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return filenames, nil
}

func (u userRepositoryImpl) ClearUserAvatar(userId string) error {
	ent := new(entity.UserEntity)
	_, err := u.cp.GetConnection().Model(ent).
		Set("avatar_filename = NULL").
		Set("avatar_updated_at = NULL").
		Where("user_id = ?", userId).
		Update()
	return err
}
