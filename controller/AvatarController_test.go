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
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shaj13/go-guardian/v2/auth"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/exception"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/view"
)

type fakeAvatarService struct {
	storeCalls int
}

func (f *fakeAvatarService) StoreUserAvatar(userId string, declaredMediaType string, data []byte) (*view.AvatarUploadResponse, error) {
	f.storeCalls++
	return &view.AvatarUploadResponse{Ok: true, AvatarUrl: "/api/v1/users/me/avatar"}, nil
}

func (f *fakeAvatarService) GetUserAvatar(userId string) (*view.UserAvatar, error) {
	return nil, nil
}

func (f *fakeAvatarService) DeleteUserAvatar(userId string) error {
	return nil
}

func newUploadRequest(t *testing.T, body *bytes.Buffer, contentType string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/users/me/avatar", body)
	r.Header.Set("Content-Type", contentType)
	return auth.RequestWithUser(auth.NewUserInfo("Test User", "u1", nil, auth.Extensions{}), r)
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) *exception.CustomError {
	t.Helper()
	var customError exception.CustomError
	if err := json.Unmarshal(w.Body.Bytes(), &customError); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return &customError
}

func TestUploadAvatar_MissingFilePart(t *testing.T) {
	service := &fakeAvatarService{}
	avatarController := NewAvatarController(service)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("other", "value"); err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	writer.Close()

	w := httptest.NewRecorder()
	avatarController.UploadAvatar(w, newUploadRequest(t, body, writer.FormDataContentType()))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	customError := decodeErrorResponse(t, w)
	if customError.Code != exception.BadRequestBody {
		t.Errorf("expected code %s for a missing file part, got %s", exception.BadRequestBody, customError.Code)
	}
	if service.storeCalls != 0 {
		t.Error("service must not be called without a file part")
	}
}

func TestUploadAvatar_RequestBodyTooLarge(t *testing.T) {
	service := &fakeAvatarService{}
	avatarController := NewAvatarController(service)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "avatar.jpg")
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte{0xAB}, maxUploadRequestBytes+1)); err != nil {
		t.Fatalf("failed to write multipart body: %v", err)
	}
	writer.Close()

	w := httptest.NewRecorder()
	avatarController.UploadAvatar(w, newUploadRequest(t, body, writer.FormDataContentType()))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	customError := decodeErrorResponse(t, w)
	if customError.Code != exception.AvatarPayloadTooLarge {
		t.Errorf("expected code %s for an oversized request, got %s", exception.AvatarPayloadTooLarge, customError.Code)
	}
	if service.storeCalls != 0 {
		t.Error("service must not be called for an oversized request")
	}
}

func TestUploadAvatar_PassesDeclaredContentType(t *testing.T) {
	service := &fakeAvatarService{}
	avatarController := NewAvatarController(service)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "avatar.jpg")
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	part.Write([]byte{0xFF, 0xD8, 0xFF})
	writer.Close()

	w := httptest.NewRecorder()
	avatarController.UploadAvatar(w, newUploadRequest(t, body, writer.FormDataContentType()))

	if w.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", w.Code)
	}
	if service.storeCalls != 1 {
		t.Errorf("expected 1 service call, got %d", service.storeCalls)
	}
}
