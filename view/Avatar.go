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

package view

import "time"

// AvatarMediaType is the single canonical format avatars are stored in.
// Every accepted upload is re-encoded to it regardless of the input format.
const AvatarMediaType = "image/jpeg"

type UserAvatar struct {
	UserId    string
	Filename  string
	Data      []byte
	UpdatedAt time.Time
}

type AvatarUploadResponse struct {
	Ok        bool   `json:"ok"`
	AvatarUrl string `json:"avatarUrl"`
}

type AvatarDeleteResponse struct {
	Ok bool `json:"ok"`
}

// Detection is a single labeled hit returned by the image classifier.
type Detection struct {
	Label string  `json:"class"`
	Score float64 `json:"score"`
}
