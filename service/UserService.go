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
	"net/http"
	"strconv"

	"github.com/gosimple/slug"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/entity"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/exception"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/repository"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/view"
)

type UserService interface {
	GetUserFromDB(userId string) (*view.User, error)
	GetUserByEmail(email string) (*view.User, error)
	CreateInternalUser(internalUser *view.InternalUser) (*view.User, error)
	AuthenticateUser(email string, password string) (*view.User, error)
}

func NewUserService(repo repository.UserRepository) UserService {
	return &usersServiceImpl{repo: repo}
}

type usersServiceImpl struct {
	repo repository.UserRepository
}

func (u usersServiceImpl) GetUserFromDB(userId string) (*view.User, error) {
	userEntity, err := u.repo.GetUserById(userId)
	if err != nil {
		return nil, fmt.Errorf("failed to get user from DB: %v", err)
	}
	if userEntity != nil {
		return entity.MakeUserView(userEntity), nil
	}
	return nil, nil
}

func (u usersServiceImpl) GetUserByEmail(email string) (*view.User, error) {
	userEntity, err := u.repo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if userEntity != nil {
		return entity.MakeUserView(userEntity), nil
	}
	return nil, nil
}

func (u usersServiceImpl) CreateInternalUser(internalUser *view.InternalUser) (*view.User, error) {
	//bcrypt max allowed password len
	if len([]byte(internalUser.Password)) > 72 {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.PasswordTooLong,
			Message: exception.PasswordTooLongMsg,
		}
	}
	err := u.validateEmail(internalUser.Email)
	if err != nil {
		return nil, err
	}

	internalUser.Id, err = u.createUniqueUserId(internalUser.Email)
	if err != nil {
		return nil, err
	}

	if internalUser.Name == "" {
		internalUser.Name = internalUser.Email
	}
	passwordHash, err := createBcryptHashedPassword(internalUser.Password)
	if err != nil {
		return nil, err
	}

	userEntity := entity.MakeInternalUserEntity(internalUser, passwordHash, view.UserRole)
	saved, err := u.repo.SaveInternalUser(userEntity)
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, &exception.CustomError{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create internal user",
		}
	}
	return entity.MakeUserView(userEntity), nil
}

func (u usersServiceImpl) validateEmail(email string) error {
	if email == "" {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.EmptyParameter,
			Message: exception.EmptyParameterMsg,
			Params:  map[string]interface{}{"param": "email"},
		}
	}
	existingUser, err := u.repo.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if existingUser != nil {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.EmailAlreadyTaken,
			Message: exception.EmailAlreadyTakenMsg,
			Params:  map[string]interface{}{"email": email},
		}
	}
	return nil
}

func (u usersServiceImpl) createUniqueUserId(email string) (string, error) {
	userId := slug.Make(email)
	existingUser, err := u.repo.GetUserById(userId)
	if err != nil {
		return "", err
	}
	if existingUser != nil {
		i := 1
		for existingUser != nil {
			userId = slug.Make(email + "-" + strconv.Itoa(i))
			existingUser, err = u.repo.GetUserById(userId)
			if err != nil {
				return "", err
			}
			i++
		}
	}
	return userId, nil
}

func (u usersServiceImpl) AuthenticateUser(email string, password string) (*view.User, error) {
	userEntity, err := u.repo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" || userEntity == nil || len(userEntity.Password) == 0 {
		log.Debugf("Local authentication failed for %v", email)
		return nil, fmt.Errorf("invalid credentials")
	}
	err = bcrypt.CompareHashAndPassword(userEntity.Password, []byte(password))
	if err != nil {
		log.Debugf("Local authentication failed for %v", email)
		return nil, fmt.Errorf("invalid credentials")
	}

	return entity.MakeUserView(userEntity), nil
}

func createBcryptHashedPassword(password string) ([]byte, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return hashedPassword, err
}
