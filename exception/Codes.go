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

package exception

// Common request errors
const (
	BadRequestBody    = "10"
	BadRequestBodyMsg = "Failed to decode body"

	EmptyParameter    = "11"
	EmptyParameterMsg = "Parameter $param should not be empty"

	IncorrectParamType    = "12"
	IncorrectParamTypeMsg = "$param parameter should be $type"

	InvalidURLEscape    = "13"
	InvalidURLEscapeMsg = "Invalid URL escape in parameter $param"

	RequiredParamsMissing    = "14"
	RequiredParamsMissingMsg = "Required parameters are missing: $params"

	InvalidParameterValue    = "15"
	InvalidParameterValueMsg = "Value $value is not allowed for parameter $param"
)

// User errors
const (
	UserNotFound    = "100"
	UserNotFoundMsg = "User with userId = $userId not found"

	EmailAlreadyTaken    = "101"
	EmailAlreadyTakenMsg = "Email $email is already taken"

	PasswordTooLong    = "102"
	PasswordTooLongMsg = "Password length exceeds 72 bytes"

	InsufficientPrivileges    = "103"
	InsufficientPrivilegesMsg = "You don't have enough privileges to perform this operation"
)

// Avatar ingest errors
const (
	UnsupportedMediaType    = "200"
	UnsupportedMediaTypeMsg = "Media type $contentType is not supported, use jpeg, png or webp"

	AvatarPayloadTooLarge    = "201"
	AvatarPayloadTooLargeMsg = "Image size exceeds the limit of $maxSizeBytes bytes"

	InvalidImageSignature    = "202"
	InvalidImageSignatureMsg = "File signature doesn't match any supported image format"

	InvalidImage    = "203"
	InvalidImageMsg = "File is not a valid image"

	ImageDimensionTooLarge    = "204"
	ImageDimensionTooLargeMsg = "Image dimensions $widthx$height exceed the limit of $maxDimension px"

	ExplicitContentDetected    = "205"
	ExplicitContentDetectedMsg = "Image was rejected by content moderation"

	ModerationUnavailable    = "206"
	ModerationUnavailableMsg = "Content moderation service is not available"

	UserAvatarNotFound    = "207"
	UserAvatarNotFoundMsg = "User $userId has no avatar"

	AvatarStoreFailed    = "208"
	AvatarStoreFailedMsg = "Failed to store avatar file"
)
