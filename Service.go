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

package main

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/client"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/controller"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/db"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/metrics"
	midldleware "github.com/venha-junto/venha-junto-backend/venha-junto-service/middleware"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/migration"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/repository"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/security"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/service"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/utils"
)

func init() {
	log.SetFormatter(&prefixed.TextFormatter{
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	})
}

func main() {
	systemInfoService, err := service.NewSystemInfoService()
	if err != nil {
		log.Fatalf("Failed to read system configuration: %s", err.Error())
	}

	setupLogging(systemInfoService)

	readyChan := make(chan bool)
	healthController := controller.NewHealthController(readyChan)

	cp := db.NewConnectionProvider(systemInfoService.GetCredsFromEnv())

	dbMigrationService := migration.NewDBMigrationService(cp)
	currentVersion, newVersion, err := dbMigrationService.Migrate()
	if err != nil {
		log.Fatalf("Failed to migrate database: %s", err.Error())
	}
	if currentVersion != newVersion {
		log.Infof("Database schema migrated from version %d to %d", currentVersion, newVersion)
	}

	userRepository, err := repository.NewUserRepositoryPG(cp)
	if err != nil {
		log.Fatalf("Failed to create user repository: %s", err.Error())
	}

	nudeDetectorClient := client.NewNudeDetectorClient(
		systemInfoService.GetModerationServiceUrl(),
		systemInfoService.GetModerationTimeout())

	userService := service.NewUserService(userRepository)
	avatarService, err := service.NewAvatarService(userRepository, nudeDetectorClient, systemInfoService.GetAvatarStorageDir())
	if err != nil {
		log.Fatalf("Failed to create avatar service: %s", err.Error())
	}
	avatarCleanupService := service.NewAvatarCleanupService(userRepository, systemInfoService.GetAvatarStorageDir())
	zeroDayAdminService := service.NewZeroDayAdminService(userService, userRepository, systemInfoService)

	err = security.SetupGoGuardian(userService, systemInfoService)
	if err != nil {
		log.Fatalf("Failed to setup authentication: %s", err.Error())
	}

	err = zeroDayAdminService.CreateZeroDayAdmin()
	if err != nil {
		log.Errorf("Failed to create zero day admin user: %s", err.Error())
	}

	err = avatarCleanupService.CreateCleanupJob(systemInfoService.GetAvatarCleanupSchedule())
	if err != nil {
		log.Errorf("Failed to create avatar cleanup job: %s", err.Error())
	}

	userController := controller.NewUserController(userService)
	avatarController := controller.NewAvatarController(avatarService)

	metrics.RegisterAllPrometheusApplicationMetrics()

	r := mux.NewRouter()
	r.Use(midldleware.PrometheusMiddleware)

	r.HandleFunc("/api/v1/auth/local", security.NoSecure(security.CreateLocalUserToken)).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/users", security.NoSecure(userController.CreateInternalUser)).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/users/me", security.Secure(userController.GetCurrentUser)).Methods(http.MethodGet)

	r.HandleFunc("/api/v1/users/me/avatar", security.Secure(avatarController.UploadAvatar)).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/users/me/avatar", security.Secure(avatarController.GetOwnAvatar)).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/users/me/avatar", security.Secure(avatarController.DeleteAvatar)).Methods(http.MethodDelete)
	r.HandleFunc("/api/v1/users/{userId}/avatar", security.Secure(avatarController.GetUserAvatar)).Methods(http.MethodGet)

	r.HandleFunc("/live", security.NoSecure(healthController.HandleLiveRequest)).Methods(http.MethodGet)
	r.HandleFunc("/ready", security.NoSecure(healthController.HandleReadyRequest)).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/system/health", security.NoSecure(healthController.HandleLiveRequest)).Methods(http.MethodGet)
	r.Path("/metrics").Handler(promhttp.Handler())

	var corsOptions []handlers.CORSOption
	corsOptions = append(corsOptions,
		handlers.AllowedHeaders([]string{"Connection", "Accept-Encoding", "Content-Encoding", "X-Requested-With", "Content-Type", "Authorization"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}))
	if systemInfoService.GetOriginAllowed() != "" {
		corsOptions = append(corsOptions, handlers.AllowedOrigins([]string{systemInfoService.GetOriginAllowed()}))
	}

	srv := &http.Server{
		Handler:      handlers.CORS(corsOptions...)(r),
		Addr:         systemInfoService.GetListenAddress(),
		WriteTimeout: 300 * time.Second,
		ReadTimeout:  30 * time.Second,
	}

	utils.SafeAsync(func() {
		readyChan <- true
	})

	log.Infof("Starting venha-junto-service on %s", systemInfoService.GetListenAddress())
	log.Fatalf("%v", srv.ListenAndServe())
}

func setupLogging(systemInfoService service.SystemInfoService) {
	logLevel, err := log.ParseLevel(systemInfoService.GetLogLevel())
	if err != nil {
		logLevel = log.InfoLevel
	}
	log.SetLevel(logLevel)

	if systemInfoService.IsProductionMode() {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   systemInfoService.GetBasePath() + "/logs/venha-junto-service.log",
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
		}))
	}
}
