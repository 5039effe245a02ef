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
	"time"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/entity"
)

type UserRepository interface {
	GetUserById(userId string) (*entity.UserEntity, error)
	GetUserByEmail(email string) (*entity.UserEntity, error)
	SaveInternalUser(user *entity.UserEntity) (bool, error)
	UpdateUserPassword(userId string, password []byte) error
	UpdateUserRole(userId string, role string) error

	// UpdateUserAvatar sets the avatar columns in one transaction and returns
	// the previously referenced filename ("" if the user had no avatar).
	UpdateUserAvatar(userId string, filename string, updatedAt time.Time) (string, error)

	// ClearUserAvatar nulls out both avatar columns. No-op for a user that
	// has no avatar.
	ClearUserAvatar(userId string) error

	GetReferencedAvatarFilenames() ([]string, error)
}
