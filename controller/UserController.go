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

package controller

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/context"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/exception"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/service"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/utils"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/view"
)

type UserController interface {
	CreateInternalUser(w http.ResponseWriter, r *http.Request)
	GetCurrentUser(w http.ResponseWriter, r *http.Request)
}

func NewUserController(service service.UserService) UserController {
	return &userControllerImpl{service: service}
}

type userControllerImpl struct {
	service service.UserService
}

func (u userControllerImpl) CreateInternalUser(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		})
		return
	}
	var internalUser view.InternalUser
	err = json.Unmarshal(body, &internalUser)
	if err != nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		})
		return
	}
	validationErr := utils.ValidateObject(internalUser)
	if validationErr != nil {
		if customError, ok := validationErr.(*exception.CustomError); ok {
			RespondWithCustomError(w, customError)
			return
		}
	}

	user, err := u.service.CreateInternalUser(&internalUser)
	if err != nil {
		RespondWithError(w, "Failed to create internal user", err)
		return
	}
	RespondWithJson(w, http.StatusCreated, user)
}

func (u userControllerImpl) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := context.Create(r)
	user, err := u.service.GetUserFromDB(ctx.GetUserId())
	if err != nil {
		RespondWithError(w, "Failed to get user", err)
		return
	}
	if user == nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.UserNotFound,
			Message: exception.UserNotFoundMsg,
			Params:  map[string]interface{}{"userId": ctx.GetUserId()},
		})
		return
	}
	RespondWithJson(w, http.StatusOK, user)
}
