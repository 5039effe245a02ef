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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TotalRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "venhajunto_http_requests_total",
		Help: "Number of get requests.",
	},
	[]string{"path", "code", "method"},
)

var HttpDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "venhajunto_http_request_duration_seconds_historgram",
		Buckets: []float64{
			0.1, // 100 ms
			0.2,
			0.25,
			0.5,
			1,
			1.5,
			3,
			5,
			10,
		},
	},
	[]string{"path", "code", "method"},
)

var AvatarUploadsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "venhajunto_avatar_uploads_total",
		Help: "Number of avatar upload attempts by outcome.",
	},
	[]string{"result"},
)

var ModerationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "venhajunto_moderation_request_duration_seconds_historgram",
		Buckets: []float64{
			0.1, // 100 ms
			0.25,
			0.5,
			1,
			2,
			5,
			10,
			30,
		},
	},
	[]string{},
)

var AvatarFilesSweptTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "venhajunto_avatar_files_swept_total",
		Help: "Number of orphaned avatar files removed by the cleanup job.",
	},
	[]string{},
)

func RegisterAllPrometheusApplicationMetrics() {
	prometheus.Register(TotalRequests)
	prometheus.Register(HttpDuration)
	prometheus.Register(AvatarUploadsTotal)
	prometheus.Register(ModerationDuration)
	prometheus.Register(AvatarFilesSweptTotal)
}
