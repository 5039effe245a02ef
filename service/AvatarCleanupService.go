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
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/metrics"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/repository"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/utils"
)

// orphanGracePeriod keeps freshly written files out of the sweep, an upload
// may still be between its file write and its database commit.
const orphanGracePeriod = 24 * time.Hour

// AvatarCleanupService periodically removes avatar files that no user record
// references. Such files are produced by failed commits and by concurrent
// uploads for the same user, both of which intentionally favor leaking a file
// over referencing a missing one.
type AvatarCleanupService interface {
	CreateCleanupJob(schedule string) error
	SweepOnce() (int, error)
}

func NewAvatarCleanupService(repo repository.UserRepository, storageDir string) AvatarCleanupService {
	return &avatarCleanupServiceImpl{
		repo:       repo,
		storageDir: storageDir,
		cron:       cron.New(),
	}
}

type avatarCleanupServiceImpl struct {
	repo       repository.UserRepository
	storageDir string
	cron       *cron.Cron
}

func (c *avatarCleanupServiceImpl) CreateCleanupJob(schedule string) error {
	job := avatarCleanupJob{service: c}

	if len(c.cron.Entries()) == 0 {
		location, err := time.LoadLocation("")
		if err != nil {
			return err
		}
		c.cron = cron.New(cron.WithLocation(location))
		c.cron.Start()
	}

	_, err := c.cron.AddJob(schedule, &job)
	if err != nil {
		log.Warnf("[AvatarCleanupService] Job wasn't added for schedule - %s. With error - %s", schedule, err)
		return err
	}
	log.Infof("[AvatarCleanupService] Job was created with schedule - %s", schedule)
	return nil
}

func (c *avatarCleanupServiceImpl) SweepOnce() (int, error) {
	referenced, err := c.repo.GetReferencedAvatarFilenames()
	if err != nil {
		return 0, err
	}
	referencedSet := make(map[string]struct{}, len(referenced))
	for _, filename := range referenced {
		referencedSet[filename] = struct{}{}
	}

	entries, err := os.ReadDir(c.storageDir)
	if err != nil {
		return 0, err
	}

	removed := 0
	cutoff := time.Now().Add(-orphanGracePeriod)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := referencedSet[entry.Name()]; ok {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(c.storageDir, entry.Name())); err != nil {
			log.Warnf("Failed to remove orphaned avatar file %s: %s", entry.Name(), err.Error())
			continue
		}
		removed++
	}
	return removed, nil
}

type avatarCleanupJob struct {
	service *avatarCleanupServiceImpl
}

func (j avatarCleanupJob) Run() {
	start := time.Now()
	removed, err := j.service.SweepOnce()
	if err != nil {
		log.Errorf("Avatar cleanup sweep failed: %s", err.Error())
		return
	}
	utils.PerfLog(time.Since(start).Milliseconds(), 30000, "Avatar cleanup sweep")
	if removed > 0 {
		metrics.AvatarFilesSweptTotal.WithLabelValues().Add(float64(removed))
		log.Infof("Avatar cleanup sweep removed %d orphaned files", removed)
	}
}
