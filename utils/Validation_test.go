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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/venha-junto/venha-junto-backend/venha-junto-service/exception"
	"github.com/venha-junto/venha-junto-backend/venha-junto-service/view"
)

func TestValidateObject(t *testing.T) {
	err := ValidateObject(view.InternalUser{Email: "user@example.com", Password: "password"})
	assert.Nil(t, err)
}

func TestValidateObject_MissingRequired(t *testing.T) {
	err := ValidateObject(view.InternalUser{Name: "No Email"})
	assert.NotNil(t, err)

	customError, ok := err.(*exception.CustomError)
	assert.True(t, ok)
	assert.Equal(t, 400, customError.Status)
	assert.Equal(t, exception.RequiredParamsMissing, customError.Code)
	assert.Equal(t, "email, password", customError.Params["params"])
}

func TestValidateObject_ReportsJsonNames(t *testing.T) {
	type req struct {
		SomeField string `json:"someField" validate:"required"`
		NoTag     string `validate:"required"`
	}
	err := ValidateObject(req{})
	assert.NotNil(t, err)

	customError := err.(*exception.CustomError)
	assert.Equal(t, "someField, NoTag", customError.Params["params"])
}
