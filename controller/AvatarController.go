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
	"errors"
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/context"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/exception"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/service"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/view"
)

// maxUploadRequestBytes bounds the whole multipart request, the per-file
// limit is enforced by the ingest itself.
const maxUploadRequestBytes = 4 * 1024 * 1024

type AvatarController interface {
	UploadAvatar(w http.ResponseWriter, r *http.Request)
	GetOwnAvatar(w http.ResponseWriter, r *http.Request)
	GetUserAvatar(w http.ResponseWriter, r *http.Request)
	DeleteAvatar(w http.ResponseWriter, r *http.Request)
}

func NewAvatarController(avatarService service.AvatarService) AvatarController {
	return &avatarControllerImpl{avatarService: avatarService}
}

type avatarControllerImpl struct {
	avatarService service.AvatarService
}

func (a avatarControllerImpl) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := context.Create(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadRequestBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			RespondWithCustomError(w, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.AvatarPayloadTooLarge,
				Message: exception.AvatarPayloadTooLargeMsg,
				Params:  map[string]interface{}{"maxSizeBytes": maxUploadRequestBytes},
				Debug:   err.Error(),
			})
			return
		}
		// missing or malformed multipart part
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := ioutil.ReadAll(file)
	if err != nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		})
		return
	}

	response, err := a.avatarService.StoreUserAvatar(ctx.GetUserId(), header.Header.Get("Content-Type"), data)
	if err != nil {
		RespondWithError(w, "Failed to store user avatar", err)
		return
	}
	RespondWithJson(w, http.StatusCreated, response)
}

func (a avatarControllerImpl) GetOwnAvatar(w http.ResponseWriter, r *http.Request) {
	a.respondWithAvatar(w, context.Create(r).GetUserId())
}

func (a avatarControllerImpl) GetUserAvatar(w http.ResponseWriter, r *http.Request) {
	userId := getStringParam(r, "userId")
	if userId == "" {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.EmptyParameter,
			Message: exception.EmptyParameterMsg,
			Params:  map[string]interface{}{"param": "userId"},
		})
		return
	}
	a.respondWithAvatar(w, userId)
}

func (a avatarControllerImpl) respondWithAvatar(w http.ResponseWriter, userId string) {
	userAvatar, err := a.avatarService.GetUserAvatar(userId)
	if err != nil {
		RespondWithError(w, "Failed to get user avatar", err)
		return
	}
	if userAvatar == nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.UserAvatarNotFound,
			Message: exception.UserAvatarNotFoundMsg,
			Params:  map[string]interface{}{"userId": userId},
		})
		return
	}

	w.Header().Set("Content-Type", view.AvatarMediaType)
	w.Header().Set("Content-Length", strconv.Itoa(len(userAvatar.Data)))
	w.Write(userAvatar.Data)
}

func (a avatarControllerImpl) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := context.Create(r)
	err := a.avatarService.DeleteUserAvatar(ctx.GetUserId())
	if err != nil {
		RespondWithError(w, "Failed to delete user avatar", err)
		return
	}
	RespondWithJson(w, http.StatusOK, view.AvatarDeleteResponse{Ok: true})
}
