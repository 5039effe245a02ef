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

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/view"
)

// NudeDetectorClient calls the external image classification service.
// The service accepts one image and returns labeled detections with
// confidence scores.
type NudeDetectorClient interface {
	Classify(image []byte) ([]view.Detection, error)
}

func NewNudeDetectorClient(detectorUrl string, timeout time.Duration) NudeDetectorClient {
	return &nudeDetectorClientImpl{
		detectorUrl: strings.TrimSuffix(detectorUrl, "/"),
		client:      resty.New().SetTimeout(timeout),
	}
}

type nudeDetectorClientImpl struct {
	detectorUrl string
	client      *resty.Client
}

type detectorResponse struct {
	Detections []view.Detection `json:"detections"`
}

func (n nudeDetectorClientImpl) Classify(image []byte) ([]view.Detection, error) {
	resp, err := n.client.R().
		SetFileReader("image", "image.jpg", bytes.NewReader(image)).
		Post(fmt.Sprintf("%s/v1/detect", n.detectorUrl))
	if err != nil {
		return nil, errors.Wrap(err, "failed to call nude detector")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("nude detector request failed: response status %v != 200", resp.StatusCode())
	}
	var result detectorResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal nude detector response")
	}
	return result.Detections, nil
}
