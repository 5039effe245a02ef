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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	imageBytes := []byte{0xFF, 0xD8, 0xFF, 0x01, 0x02}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/detect" {
			t.Errorf("expected path /v1/detect, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("expected multipart field 'image': %v", err)
		}
		defer file.Close()
		body, err := io.ReadAll(file)
		if err != nil {
			t.Fatalf("failed to read uploaded image: %v", err)
		}
		if len(body) != len(imageBytes) {
			t.Errorf("expected %d uploaded bytes, got %d", len(imageBytes), len(body))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"detections":[{"class":"EXPOSED_BUTTOCKS","score":0.82},{"class":"FACE_F","score":0.97}]}`))
	}))
	defer server.Close()

	client := NewNudeDetectorClient(server.URL, 5*time.Second)
	detections, err := client.Classify(imageBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(detections) != 2 {
		t.Fatalf("expected 2 detections, got %d", len(detections))
	}
	if detections[0].Label != "EXPOSED_BUTTOCKS" {
		t.Errorf("expected label EXPOSED_BUTTOCKS, got %s", detections[0].Label)
	}
	if detections[0].Score != 0.82 {
		t.Errorf("expected score 0.82, got %v", detections[0].Score)
	}
}

func TestClassify_EmptyDetections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"detections":[]}`))
	}))
	defer server.Close()

	client := NewNudeDetectorClient(server.URL, 5*time.Second)
	detections, err := client.Classify([]byte{0x01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(detections) != 0 {
		t.Errorf("expected no detections, got %d", len(detections))
	}
}

func TestClassify_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewNudeDetectorClient(server.URL, 5*time.Second)
	if _, err := client.Classify([]byte{0x01}); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestClassify_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewNudeDetectorClient(server.URL, time.Second)
	if _, err := client.Classify([]byte{0x01}); err == nil {
		t.Fatal("expected error for unreachable detector")
	}
}

func TestClassify_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewNudeDetectorClient(server.URL, 5*time.Second)
	if _, err := client.Classify([]byte{0x01}); err == nil {
		t.Fatal("expected error for malformed response body")
	}
}
