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

package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/view"
)

type UserEntity struct {
	tableName struct{} `pg:"user_data, alias:user_data"`

	Id             string    `pg:"user_id, pk, type:varchar"`
	Username       string    `pg:"name, type:varchar"`
	Email          string    `pg:"email, type:varchar"`
	Phone          string    `pg:"phone, type:varchar"`
	Password       []byte    `pg:"password, type:bytea"`
	Role           string    `pg:"role, type:varchar"`
	AvatarFilename string    `pg:"avatar_filename, type:varchar"`
	AvatarUpdated  time.Time `pg:"avatar_updated_at, type:timestamp without time zone"`
}

func MakeUserView(userEntity *UserEntity) *view.User {
	avatarUrl := ""
	if userEntity.AvatarFilename != "" {
		avatarUrl = fmt.Sprintf("/api/v1/users/%s/avatar", userEntity.Id)
	}
	return &view.User{
		Id:        userEntity.Id,
		Name:      userEntity.Username,
		Email:     userEntity.Email,
		Phone:     userEntity.Phone,
		Role:      userEntity.Role,
		AvatarUrl: avatarUrl,
	}
}

func MakeInternalUserEntity(internalUser *view.InternalUser, password []byte, role string) *UserEntity {
	return &UserEntity{
		Id:       internalUser.Id,
		Username: internalUser.Name,
		Email:    strings.ToLower(internalUser.Email),
		Phone:    internalUser.Phone,
		Password: password,
		Role:     role,
	}
}
