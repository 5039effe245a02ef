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
	"testing"
	"time"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/entity"
)

func writeSweepTestFile(t *testing.T, dir string, name string, age time.Duration) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("jpeg bytes"), 0640); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	modTime := time.Now().Add(-age)
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("failed to set test file mtime: %v", err)
	}
}

func TestSweepOnce(t *testing.T) {
	storageDir := t.TempDir()
	repo := newFakeUserRepository(&entity.UserEntity{Id: "u1", Email: "u1@example.com", AvatarFilename: "referenced.jpg"})
	service := NewAvatarCleanupService(repo, storageDir)

	writeSweepTestFile(t, storageDir, "referenced.jpg", 48*time.Hour)
	writeSweepTestFile(t, storageDir, "orphan-old.jpg", 48*time.Hour)
	writeSweepTestFile(t, storageDir, "orphan-fresh.jpg", time.Minute)

	removed, err := service.SweepOnce()
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed file, got %d", removed)
	}

	if _, err := os.Stat(filepath.Join(storageDir, "referenced.jpg")); err != nil {
		t.Error("referenced file must survive the sweep")
	}
	if _, err := os.Stat(filepath.Join(storageDir, "orphan-fresh.jpg")); err != nil {
		t.Error("fresh orphan must survive the sweep, its upload may still be in flight")
	}
	if _, err := os.Stat(filepath.Join(storageDir, "orphan-old.jpg")); !os.IsNotExist(err) {
		t.Error("old orphan must be removed by the sweep")
	}
}

func TestSweepOnce_EmptyDir(t *testing.T) {
	storageDir := t.TempDir()
	repo := newFakeUserRepository()
	service := NewAvatarCleanupService(repo, storageDir)

	removed, err := service.SweepOnce()
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected 0 removed files, got %d", removed)
	}
}
