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

package security

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"time"

	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/shaj13/go-guardian/v2/auth/strategies/jwt"
	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/context"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/controller"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/exception"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/service"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/view"
)

var jwtStrategy auth.Strategy
var keeper jwt.SecretsKeeper
var userService service.UserService

func SetupGoGuardian(userServiceLocal service.UserService, systemInfoService service.SystemInfoService) error {
	userService = userServiceLocal

	block, _ := pem.Decode(systemInfoService.GetJwtPrivateKey())
	pkcs8PrivateKey, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return fmt.Errorf("can't parse pkcs8 private key. Error - %s", err.Error())
	}
	privateKey, ok := pkcs8PrivateKey.(*rsa.PrivateKey)
	if !ok {
		return fmt.Errorf("can't cast pkcs8 private key to rsa.PrivateKey")
	}

	keeper = jwt.StaticSecret{
		ID:        "secret-id",
		Secret:    privateKey,
		Algorithm: jwt.RS256,
	}

	cache := libcache.LRU.New(1000)
	cache.SetTTL(time.Minute * 60)
	cache.RegisterOnExpired(func(key, _ interface{}) {
		cache.Delete(key)
	})
	jwtStrategy = jwt.New(cache, keeper)
	return nil
}

type UserView struct {
	AccessToken string    `json:"token"`
	RenewToken  string    `json:"renewToken"`
	User        view.User `json:"user"`
}

func CreateLocalUserToken(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		controller.RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusUnauthorized,
			Message: http.StatusText(http.StatusUnauthorized),
		})
		return
	}
	user, err := userService.AuthenticateUser(email, password)
	if err != nil {
		controller.RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusUnauthorized,
			Message: http.StatusText(http.StatusUnauthorized),
			Debug:   err.Error(),
		})
		return
	}
	userView, err := CreateTokenForUser(*user)
	if err != nil {
		controller.RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusUnauthorized,
			Message: http.StatusText(http.StatusUnauthorized),
			Debug:   err.Error(),
		})
		return
	}

	response, _ := json.Marshal(userView)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(response)
}

func CreateTokenForUser(dbUser view.User) (*UserView, error) {
	user := auth.NewUserInfo(dbUser.Name, dbUser.Id, []string{}, auth.Extensions{})
	accessDuration := jwt.SetExpDuration(time.Hour * 12) // should be more than one minute!

	extensions := user.GetExtensions()
	if dbUser.Role != "" {
		extensions.Set(context.RoleExt, dbUser.Role)
	}
	user.SetExtensions(extensions)

	token, err := jwt.IssueAccessToken(user, keeper, accessDuration)
	if err != nil {
		return nil, err
	}

	renewDuration := jwt.SetExpDuration(time.Hour * 24 * 30) // approximately one month
	renewToken, err := jwt.IssueAccessToken(user, keeper, renewDuration)
	if err != nil {
		return nil, err
	}

	return &UserView{AccessToken: token, RenewToken: renewToken, User: dbUser}, nil
}
