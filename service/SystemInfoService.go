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
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/view"
)

const (
	JWT_PRIVATE_KEY               = "JWT_PRIVATE_KEY"
	BASE_PATH                     = "BASE_PATH"
	PRODUCTION_MODE               = "PRODUCTION_MODE"
	LOG_LEVEL                     = "LOG_LEVEL"
	LISTEN_ADDRESS                = "LISTEN_ADDRESS"
	ORIGIN_ALLOWED                = "ORIGIN_ALLOWED"
	VENHAJUNTO_POSTGRESQL_HOST    = "VENHAJUNTO_POSTGRESQL_HOST"
	VENHAJUNTO_POSTGRESQL_PORT    = "VENHAJUNTO_POSTGRESQL_PORT"
	VENHAJUNTO_POSTGRESQL_DB_NAME = "VENHAJUNTO_POSTGRESQL_DB_NAME"
	VENHAJUNTO_POSTGRESQL_USER    = "VENHAJUNTO_POSTGRESQL_USERNAME"
	VENHAJUNTO_POSTGRESQL_PASS    = "VENHAJUNTO_POSTGRESQL_PASSWORD"
	PG_SSL_MODE                   = "PG_SSL_MODE"
	AVATAR_STORAGE_DIR            = "AVATAR_STORAGE_DIR"
	AVATAR_CLEANUP_SCHEDULE       = "AVATAR_CLEANUP_SCHEDULE"
	MODERATION_SERVICE_URL        = "MODERATION_SERVICE_URL"
	MODERATION_TIMEOUT_SEC        = "MODERATION_TIMEOUT_SEC"
	VENHAJUNTO_ADMIN_EMAIL        = "VENHAJUNTO_ADMIN_EMAIL"
	VENHAJUNTO_ADMIN_PASSWORD     = "VENHAJUNTO_ADMIN_PASSWORD"
)

type SystemInfoService interface {
	GetSystemInfo() *view.SystemInfo
	Init() error
	GetBasePath() string
	GetJwtPrivateKey() []byte
	IsProductionMode() bool
	GetBackendVersion() string
	GetLogLevel() string
	GetListenAddress() string
	GetOriginAllowed() string
	GetPGHost() string
	GetPGPort() int
	GetPGDB() string
	GetPGUser() string
	GetPGPassword() string
	GetPGSSLMode() string
	GetCredsFromEnv() *view.DbCredentials
	GetAvatarStorageDir() string
	GetAvatarCleanupSchedule() string
	GetModerationServiceUrl() string
	GetModerationTimeout() time.Duration
	GetZeroDayAdminCreds() (string, string, error)
}

func NewSystemInfoService() (SystemInfoService, error) {
	s := &systemInfoServiceImpl{
		systemInfoMap: make(map[string]interface{})}
	if err := s.Init(); err != nil {
		log.Error("Failed to read system info: " + err.Error())
		return nil, err
	}
	return s, nil
}

type systemInfoServiceImpl struct {
	systemInfoMap map[string]interface{}
}

func (g systemInfoServiceImpl) GetSystemInfo() *view.SystemInfo {
	return &view.SystemInfo{
		BackendVersion: g.GetBackendVersion(),
		ProductionMode: g.IsProductionMode(),
	}
}

func (g systemInfoServiceImpl) Init() error {
	err := g.setJwtPrivateKey()
	if err != nil {
		return err
	}
	g.setBasePath()
	if err = g.setProductionMode(); err != nil {
		return err
	}
	g.setLogLevel()
	g.setListenAddress()
	g.setOriginAllowed()
	g.setPGHost()
	if err = g.setPGPort(); err != nil {
		return err
	}
	g.setPGDB()
	g.setPGUser()
	g.setPGPassword()
	g.setPGSSLMode()
	g.setAvatarStorageDir()
	g.setAvatarCleanupSchedule()
	if err = g.setModerationServiceUrl(); err != nil {
		return err
	}
	if err = g.setModerationTimeout(); err != nil {
		return err
	}
	return nil
}

func (g systemInfoServiceImpl) setJwtPrivateKey() error {
	decodePrivateKey, err := base64.StdEncoding.DecodeString(os.Getenv(JWT_PRIVATE_KEY))
	if err != nil {
		return fmt.Errorf("can't decode env JWT_PRIVATE_KEY. Error - %s", err.Error())
	}
	if len(decodePrivateKey) == 0 {
		return fmt.Errorf("env JWT_PRIVATE_KEY is not set or empty")
	}
	g.systemInfoMap[JWT_PRIVATE_KEY] = decodePrivateKey
	return nil
}

func (g systemInfoServiceImpl) setBasePath() {
	g.systemInfoMap[BASE_PATH] = os.Getenv(BASE_PATH)
	if g.systemInfoMap[BASE_PATH] == "" {
		g.systemInfoMap[BASE_PATH] = "."
	}
}

func (g systemInfoServiceImpl) setProductionMode() error {
	productionMode := false
	envVal := os.Getenv(PRODUCTION_MODE)
	if envVal != "" {
		var err error
		productionMode, err = strconv.ParseBool(envVal)
		if err != nil {
			return fmt.Errorf("env %s has incorrect value: %s", PRODUCTION_MODE, envVal)
		}
	}
	g.systemInfoMap[PRODUCTION_MODE] = productionMode
	return nil
}

func (g systemInfoServiceImpl) setLogLevel() {
	g.systemInfoMap[LOG_LEVEL] = os.Getenv(LOG_LEVEL)
}

func (g systemInfoServiceImpl) setListenAddress() {
	g.systemInfoMap[LISTEN_ADDRESS] = os.Getenv(LISTEN_ADDRESS)
	if g.systemInfoMap[LISTEN_ADDRESS] == "" {
		g.systemInfoMap[LISTEN_ADDRESS] = "0.0.0.0:8080"
	}
}

func (g systemInfoServiceImpl) setOriginAllowed() {
	g.systemInfoMap[ORIGIN_ALLOWED] = os.Getenv(ORIGIN_ALLOWED)
}

func (g systemInfoServiceImpl) setPGHost() {
	g.systemInfoMap[VENHAJUNTO_POSTGRESQL_HOST] = os.Getenv(VENHAJUNTO_POSTGRESQL_HOST)
	if g.systemInfoMap[VENHAJUNTO_POSTGRESQL_HOST] == "" {
		g.systemInfoMap[VENHAJUNTO_POSTGRESQL_HOST] = "localhost"
	}
}

func (g systemInfoServiceImpl) setPGPort() error {
	port := 5432
	envVal := os.Getenv(VENHAJUNTO_POSTGRESQL_PORT)
	if envVal != "" {
		var err error
		port, err = strconv.Atoi(envVal)
		if err != nil {
			return fmt.Errorf("env %s has incorrect value: %s", VENHAJUNTO_POSTGRESQL_PORT, envVal)
		}
	}
	g.systemInfoMap[VENHAJUNTO_POSTGRESQL_PORT] = port
	return nil
}

func (g systemInfoServiceImpl) setPGDB() {
	g.systemInfoMap[VENHAJUNTO_POSTGRESQL_DB_NAME] = os.Getenv(VENHAJUNTO_POSTGRESQL_DB_NAME)
	if g.systemInfoMap[VENHAJUNTO_POSTGRESQL_DB_NAME] == "" {
		g.systemInfoMap[VENHAJUNTO_POSTGRESQL_DB_NAME] = "venhajunto"
	}
}

func (g systemInfoServiceImpl) setPGUser() {
	g.systemInfoMap[VENHAJUNTO_POSTGRESQL_USER] = os.Getenv(VENHAJUNTO_POSTGRESQL_USER)
	if g.systemInfoMap[VENHAJUNTO_POSTGRESQL_USER] == "" {
		g.systemInfoMap[VENHAJUNTO_POSTGRESQL_USER] = "postgres"
	}
}

func (g systemInfoServiceImpl) setPGPassword() {
	g.systemInfoMap[VENHAJUNTO_POSTGRESQL_PASS] = os.Getenv(VENHAJUNTO_POSTGRESQL_PASS)
}

func (g systemInfoServiceImpl) setPGSSLMode() {
	g.systemInfoMap[PG_SSL_MODE] = os.Getenv(PG_SSL_MODE)
	if g.systemInfoMap[PG_SSL_MODE] == "" {
		g.systemInfoMap[PG_SSL_MODE] = "disable"
	}
}

func (g systemInfoServiceImpl) setAvatarStorageDir() {
	g.systemInfoMap[AVATAR_STORAGE_DIR] = os.Getenv(AVATAR_STORAGE_DIR)
	if g.systemInfoMap[AVATAR_STORAGE_DIR] == "" {
		g.systemInfoMap[AVATAR_STORAGE_DIR] = "storage/avatars"
	}
}

func (g systemInfoServiceImpl) setAvatarCleanupSchedule() {
	g.systemInfoMap[AVATAR_CLEANUP_SCHEDULE] = os.Getenv(AVATAR_CLEANUP_SCHEDULE)
	if g.systemInfoMap[AVATAR_CLEANUP_SCHEDULE] == "" {
		g.systemInfoMap[AVATAR_CLEANUP_SCHEDULE] = "0 3 * * *"
	}
}

func (g systemInfoServiceImpl) setModerationServiceUrl() error {
	url := os.Getenv(MODERATION_SERVICE_URL)
	if url == "" {
		return fmt.Errorf("env %s is not set, content moderation is mandatory", MODERATION_SERVICE_URL)
	}
	g.systemInfoMap[MODERATION_SERVICE_URL] = url
	return nil
}

func (g systemInfoServiceImpl) setModerationTimeout() error {
	seconds := 30
	envVal := os.Getenv(MODERATION_TIMEOUT_SEC)
	if envVal != "" {
		var err error
		seconds, err = strconv.Atoi(envVal)
		if err != nil || seconds <= 0 {
			return fmt.Errorf("env %s has incorrect value: %s", MODERATION_TIMEOUT_SEC, envVal)
		}
	}
	g.systemInfoMap[MODERATION_TIMEOUT_SEC] = time.Duration(seconds) * time.Second
	return nil
}

func (g systemInfoServiceImpl) GetBasePath() string {
	return g.systemInfoMap[BASE_PATH].(string)
}

func (g systemInfoServiceImpl) GetJwtPrivateKey() []byte {
	return g.systemInfoMap[JWT_PRIVATE_KEY].([]byte)
}

func (g systemInfoServiceImpl) IsProductionMode() bool {
	return g.systemInfoMap[PRODUCTION_MODE].(bool)
}

func (g systemInfoServiceImpl) GetBackendVersion() string {
	version := os.Getenv("ARTIFACT_DESCRIPTOR_VERSION")
	if version == "" {
		version = "unknown"
	}
	return version
}

func (g systemInfoServiceImpl) GetLogLevel() string {
	return g.systemInfoMap[LOG_LEVEL].(string)
}

func (g systemInfoServiceImpl) GetListenAddress() string {
	return g.systemInfoMap[LISTEN_ADDRESS].(string)
}

func (g systemInfoServiceImpl) GetOriginAllowed() string {
	return g.systemInfoMap[ORIGIN_ALLOWED].(string)
}

func (g systemInfoServiceImpl) GetPGHost() string {
	return g.systemInfoMap[VENHAJUNTO_POSTGRESQL_HOST].(string)
}

func (g systemInfoServiceImpl) GetPGPort() int {
	return g.systemInfoMap[VENHAJUNTO_POSTGRESQL_PORT].(int)
}

func (g systemInfoServiceImpl) GetPGDB() string {
	return g.systemInfoMap[VENHAJUNTO_POSTGRESQL_DB_NAME].(string)
}

func (g systemInfoServiceImpl) GetPGUser() string {
	return g.systemInfoMap[VENHAJUNTO_POSTGRESQL_USER].(string)
}

func (g systemInfoServiceImpl) GetPGPassword() string {
	return g.systemInfoMap[VENHAJUNTO_POSTGRESQL_PASS].(string)
}

func (g systemInfoServiceImpl) GetPGSSLMode() string {
	return g.systemInfoMap[PG_SSL_MODE].(string)
}

func (g systemInfoServiceImpl) GetCredsFromEnv() *view.DbCredentials {
	return &view.DbCredentials{
		Host:     g.GetPGHost(),
		Port:     g.GetPGPort(),
		Database: g.GetPGDB(),
		Username: g.GetPGUser(),
		Password: g.GetPGPassword(),
		SSLMode:  g.GetPGSSLMode(),
	}
}

func (g systemInfoServiceImpl) GetAvatarStorageDir() string {
	return g.systemInfoMap[AVATAR_STORAGE_DIR].(string)
}

func (g systemInfoServiceImpl) GetAvatarCleanupSchedule() string {
	return g.systemInfoMap[AVATAR_CLEANUP_SCHEDULE].(string)
}

func (g systemInfoServiceImpl) GetModerationServiceUrl() string {
	return g.systemInfoMap[MODERATION_SERVICE_URL].(string)
}

func (g systemInfoServiceImpl) GetModerationTimeout() time.Duration {
	return g.systemInfoMap[MODERATION_TIMEOUT_SEC].(time.Duration)
}

func (g systemInfoServiceImpl) GetZeroDayAdminCreds() (string, string, error) {
	email := os.Getenv(VENHAJUNTO_ADMIN_EMAIL)
	password := os.Getenv(VENHAJUNTO_ADMIN_PASSWORD)
	if email == "" || password == "" {
		return "", "", fmt.Errorf("envs %s and %s are required", VENHAJUNTO_ADMIN_EMAIL, VENHAJUNTO_ADMIN_PASSWORD)
	}
	return email, password, nil
}
