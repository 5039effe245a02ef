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
	"net/http"
	"strings"
	"testing"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/exception"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/view"
)

func TestCreateInternalUser(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo)

	user, err := service.CreateInternalUser(&view.InternalUser{
		Email:    "Maria.Silva@example.com",
		Name:     "Maria Silva",
		Password: "s3cret-password",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Id == "" {
		t.Error("expected a generated user id")
	}
	if user.Role != view.UserRole {
		t.Errorf("expected role %s, got %s", view.UserRole, user.Role)
	}
	if user.AvatarUrl != "" {
		t.Error("fresh user must not have an avatar url")
	}

	saved, _ := repo.GetUserByEmail("maria.silva@example.com")
	if saved == nil {
		t.Fatal("expected the user to be saved with a lowercased email")
	}
	if strings.Contains(string(saved.Password), "s3cret-password") {
		t.Error("password must be stored hashed")
	}
}

func TestCreateInternalUser_PasswordTooLong(t *testing.T) {
	service := NewUserService(newFakeUserRepository())

	_, err := service.CreateInternalUser(&view.InternalUser{
		Email:    "user@example.com",
		Password: strings.Repeat("x", 73),
	})
	requireCustomError(t, err, http.StatusBadRequest, exception.PasswordTooLong)
}

func TestCreateInternalUser_EmailAlreadyTaken(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo)

	first := &view.InternalUser{Email: "user@example.com", Password: "password-1"}
	if _, err := service.CreateInternalUser(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := service.CreateInternalUser(&view.InternalUser{Email: "user@example.com", Password: "password-2"})
	requireCustomError(t, err, http.StatusBadRequest, exception.EmailAlreadyTaken)
}

func TestCreateInternalUser_EmptyEmail(t *testing.T) {
	service := NewUserService(newFakeUserRepository())

	_, err := service.CreateInternalUser(&view.InternalUser{Password: "password"})
	requireCustomError(t, err, http.StatusBadRequest, exception.EmptyParameter)
}

func TestAuthenticateUser(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo)

	if _, err := service.CreateInternalUser(&view.InternalUser{
		Email:    "user@example.com",
		Password: "correct horse battery staple",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := service.AuthenticateUser("user@example.com", "correct horse battery staple")
	if err != nil {
		t.Fatalf("expected successful authentication, got: %v", err)
	}
	if user.Email != "user@example.com" {
		t.Errorf("unexpected email %s", user.Email)
	}

	if _, err := service.AuthenticateUser("user@example.com", "wrong password"); err == nil {
		t.Error("expected authentication failure for a wrong password")
	}
	if _, err := service.AuthenticateUser("user@example.com", ""); err == nil {
		t.Error("expected authentication failure for an empty password")
	}
	if _, err := service.AuthenticateUser("unknown@example.com", "whatever"); err == nil {
		t.Error("expected authentication failure for an unknown user")
	}
}
