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
	"bytes"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	// registers the WEBP decoder for image.DecodeConfig and imaging.Decode
	_ "golang.org/x/image/webp"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/client"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/exception"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/metrics"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/repository"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/view"
)

const (
	maxAvatarSizeBytes = 2 * 1024 * 1024
	maxSourceDimension = 6000
	maxAvatarDimension = 1024
	avatarJpegQuality  = 88

	moderationScoreThreshold = 0.60
)

var allowedAvatarMediaTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

var blockedDetectionLabels = map[string]struct{}{
	"EXPOSED_BREAST_F":    {},
	"EXPOSED_BREAST_M":    {},
	"EXPOSED_GENITALIA_F": {},
	"EXPOSED_GENITALIA_M": {},
	"EXPOSED_BUTTOCKS":    {},
	"EXPOSED_ANUS":        {},
}

// AvatarService turns one untrusted upload into a sanitized stored avatar.
// Every stage is a hard gate: the first failing check wins and nothing is
// written before the last gate passes. The database row is only updated after
// the new file exists on disk, so avatar_filename never references a file
// that was not written. Two concurrent uploads for the same user are not
// serialized: the last commit wins and the loser's file is left unreferenced
// until the cleanup sweeper collects it.
type AvatarService interface {
	StoreUserAvatar(userId string, declaredMediaType string, data []byte) (*view.AvatarUploadResponse, error)
	GetUserAvatar(userId string) (*view.UserAvatar, error)
	DeleteUserAvatar(userId string) error
}

func NewAvatarService(repo repository.UserRepository, detector client.NudeDetectorClient, storageDir string) (AvatarService, error) {
	if err := os.MkdirAll(storageDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create avatar storage dir %s: %w", storageDir, err)
	}
	return &avatarServiceImpl{
		repo:       repo,
		detector:   detector,
		storageDir: storageDir,
	}, nil
}

type avatarServiceImpl struct {
	repo       repository.UserRepository
	detector   client.NudeDetectorClient
	storageDir string
}

func (a avatarServiceImpl) StoreUserAvatar(userId string, declaredMediaType string, data []byte) (*view.AvatarUploadResponse, error) {
	response, err := a.storeUserAvatar(userId, declaredMediaType, data)
	if err != nil {
		metrics.AvatarUploadsTotal.WithLabelValues("rejected").Inc()
	} else {
		metrics.AvatarUploadsTotal.WithLabelValues("stored").Inc()
	}
	return response, err
}

func (a avatarServiceImpl) storeUserAvatar(userId string, declaredMediaType string, data []byte) (*view.AvatarUploadResponse, error) {
	mediaType := normalizeMediaType(declaredMediaType)
	if _, allowed := allowedAvatarMediaTypes[mediaType]; !allowed {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.UnsupportedMediaType,
			Message: exception.UnsupportedMediaTypeMsg,
			Params:  map[string]interface{}{"contentType": declaredMediaType},
		}
	}
	if len(data) > maxAvatarSizeBytes {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.AvatarPayloadTooLarge,
			Message: exception.AvatarPayloadTooLargeMsg,
			Params:  map[string]interface{}{"maxSizeBytes": maxAvatarSizeBytes},
		}
	}
	// the declared type is never trusted alone
	sniffedMediaType := sniffImageMediaType(data)
	if sniffedMediaType == "" || sniffedMediaType != mediaType {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidImageSignature,
			Message: exception.InvalidImageSignatureMsg,
		}
	}

	sanitized, err := sanitizeAndReencode(data)
	if err != nil {
		return nil, err
	}

	if err := a.rejectExplicitContent(sanitized); err != nil {
		return nil, err
	}

	newFilename := newAvatarFilename()
	if err := os.WriteFile(filepath.Join(a.storageDir, newFilename), sanitized, 0640); err != nil {
		log.Errorf("Failed to write avatar file %s: %s", newFilename, err.Error())
		return nil, &exception.CustomError{
			Status:  http.StatusInternalServerError,
			Code:    exception.AvatarStoreFailed,
			Message: exception.AvatarStoreFailedMsg,
			Debug:   err.Error(),
		}
	}

	// if the commit fails the file written above is left unreferenced, which
	// the cleanup sweeper reclaims; the record is never updated first
	previousFilename, err := a.repo.UpdateUserAvatar(userId, newFilename, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if previousFilename != "" && previousFilename != newFilename {
		a.removeAvatarFileQuietly(previousFilename)
	}

	return &view.AvatarUploadResponse{Ok: true, AvatarUrl: "/api/v1/users/me/avatar"}, nil
}

func (a avatarServiceImpl) GetUserAvatar(userId string) (*view.UserAvatar, error) {
	user, err := a.repo.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.UserNotFound,
			Message: exception.UserNotFoundMsg,
			Params:  map[string]interface{}{"userId": userId},
		}
	}
	if user.AvatarFilename == "" {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Join(a.storageDir, user.AvatarFilename))
	if err != nil {
		if os.IsNotExist(err) {
			// the record references a file that is gone, heal the record
			log.Warnf("Avatar file %s for user %s is missing, clearing the reference", user.AvatarFilename, userId)
			if clearErr := a.repo.ClearUserAvatar(userId); clearErr != nil {
				log.Errorf("Failed to clear missing avatar reference for user %s: %s", userId, clearErr.Error())
			}
			return nil, nil
		}
		return nil, err
	}
	return &view.UserAvatar{
		UserId:    userId,
		Filename:  user.AvatarFilename,
		Data:      data,
		UpdatedAt: user.AvatarUpdated,
	}, nil
}

func (a avatarServiceImpl) DeleteUserAvatar(userId string) error {
	user, err := a.repo.GetUserById(userId)
	if err != nil {
		return err
	}
	if user == nil {
		return &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.UserNotFound,
			Message: exception.UserNotFoundMsg,
			Params:  map[string]interface{}{"userId": userId},
		}
	}
	if user.AvatarFilename == "" {
		return nil
	}
	a.removeAvatarFileQuietly(user.AvatarFilename)
	return a.repo.ClearUserAvatar(userId)
}

func (a avatarServiceImpl) rejectExplicitContent(sanitized []byte) error {
	start := time.Now()
	detections, err := a.detector.Classify(sanitized)
	metrics.ModerationDuration.WithLabelValues().Observe(time.Since(start).Seconds())
	if err != nil {
		// the moderation gate fails closed
		log.Errorf("Nude detector call failed: %s", err.Error())
		return &exception.CustomError{
			Status:  http.StatusServiceUnavailable,
			Code:    exception.ModerationUnavailable,
			Message: exception.ModerationUnavailableMsg,
			Debug:   err.Error(),
		}
	}
	for _, detection := range detections {
		label := strings.ToUpper(detection.Label)
		if _, blocked := blockedDetectionLabels[label]; blocked && detection.Score >= moderationScoreThreshold {
			log.Debugf("Avatar rejected by moderation: label=%s score=%.2f", label, detection.Score)
			return &exception.CustomError{
				Status:  http.StatusUnprocessableEntity,
				Code:    exception.ExplicitContentDetected,
				Message: exception.ExplicitContentDetectedMsg,
			}
		}
	}
	return nil
}

// removeAvatarFileQuietly is the single place where a filesystem delete is
// allowed to fail without failing the enclosing request. A leaked file is
// acceptable, an inconsistent user record is not.
func (a avatarServiceImpl) removeAvatarFileQuietly(filename string) {
	err := os.Remove(filepath.Join(a.storageDir, filename))
	if err != nil && !os.IsNotExist(err) {
		log.Warnf("Failed to remove avatar file %s: %s", filename, err.Error())
	}
}

func normalizeMediaType(declared string) string {
	mediaType := declared
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func sniffImageMediaType(data []byte) string {
	if bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}) {
		return "image/jpeg"
	}
	if bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		return "image/png"
	}
	if len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return "image/webp"
	}
	return ""
}

// sanitizeAndReencode decodes the image, bounds its dimensions, applies the
// EXIF orientation, downscales to fit 1024x1024 and re-encodes as baseline
// JPEG. The original container is discarded entirely, which drops EXIF, ICC
// profiles, comments and any transparency along with it.
func sanitizeAndReencode(data []byte) ([]byte, error) {
	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidImage,
			Message: exception.InvalidImageMsg,
			Debug:   err.Error(),
		}
	}
	if config.Width > maxSourceDimension || config.Height > maxSourceDimension {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.ImageDimensionTooLarge,
			Message: exception.ImageDimensionTooLargeMsg,
			Params:  map[string]interface{}{"width": config.Width, "height": config.Height, "maxDimension": maxSourceDimension},
		}
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidImage,
			Message: exception.InvalidImageMsg,
			Debug:   err.Error(),
		}
	}
	// Fit never upscales
	img = imaging.Fit(img, maxAvatarDimension, maxAvatarDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(avatarJpegQuality)); err != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusInternalServerError,
			Code:    exception.AvatarStoreFailed,
			Message: exception.AvatarStoreFailedMsg,
			Debug:   err.Error(),
		}
	}
	return buf.Bytes(), nil
}

func newAvatarFilename() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "") + ".jpg"
}
