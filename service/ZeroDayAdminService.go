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

package service

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/repository"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/view"
)

type ZeroDayAdminService interface {
	CreateZeroDayAdmin() error
}

func NewZeroDayAdminService(userService UserService, repo repository.UserRepository, systemInfoService SystemInfoService) ZeroDayAdminService {
	return &zeroDayAdminServiceImpl{
		userService:       userService,
		repo:              repo,
		systemInfoService: systemInfoService,
	}
}

type zeroDayAdminServiceImpl struct {
	userService       UserService
	repo              repository.UserRepository
	systemInfoService SystemInfoService
}

func (a zeroDayAdminServiceImpl) CreateZeroDayAdmin() error {
	email, password, err := a.systemInfoService.GetZeroDayAdminCreds()
	if err != nil {
		return fmt.Errorf("CreateZeroDayAdmin: credentials error: %w, admin will not be created", err)
	}

	user, _ := a.userService.GetUserByEmail(email)
	if user != nil {
		_, err := a.userService.AuthenticateUser(email, password)
		if err != nil {
			passwordHash, err := createBcryptHashedPassword(password)
			if err != nil {
				return err
			}
			err = a.repo.UpdateUserPassword(user.Id, passwordHash)
			if err != nil {
				return err
			}
			log.Infof("CreateZeroDayAdmin: password is updated for admin user")
		} else {
			log.Infof("CreateZeroDayAdmin: admin user is already present")
		}
	} else {
		user, err := a.userService.CreateInternalUser(
			&view.InternalUser{
				Email:    email,
				Password: password,
			},
		)
		if err != nil {
			return err
		}
		err = a.repo.UpdateUserRole(user.Id, view.AdminRole)
		if err != nil {
			return err
		}
		log.Infof("CreateZeroDayAdmin: admin user '%s' has been created", email)
	}
	return nil
}
