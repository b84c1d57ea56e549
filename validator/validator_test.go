package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestLogRequest struct {
	Exercise string  `json:"exercise" validate:"notblank,max=100,exercise"`
	Weight   float64 `json:"weight" validate:"gte=0,lte=2000"`
	Reps     int     `json:"reps" validate:"gte=0,lte=1000"`
}

type TestUserRequest struct {
	Username string `json:"username" validate:"required,max=64,username"`
	Password string `json:"password" validate:"required"`
}

func TestValidator_LogRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       TestLogRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Valid log request",
			req:       TestLogRequest{Exercise: "Bench Press", Weight: 80, Reps: 8},
			wantError: false,
		},
		{
			name:      "Zero weight and reps are valid",
			req:       TestLogRequest{Exercise: "Plank", Weight: 0, Reps: 0},
			wantError: false,
		},
		{
			name:      "Blank exercise",
			req:       TestLogRequest{Exercise: "   ", Weight: 10, Reps: 1},
			wantError: true,
			errorMsg:  "exercise should not be blank",
		},
		{
			name:      "Exercise too long",
			req:       TestLogRequest{Exercise: strings.Repeat("a", 101), Weight: 10, Reps: 1},
			wantError: true,
			errorMsg:  "at most 100 characters",
		},
		{
			name:      "Invalid exercise characters",
			req:       TestLogRequest{Exercise: "Squat<script>", Weight: 10, Reps: 1},
			wantError: true,
			errorMsg:  "invalid characters",
		},
		{
			name:      "Exercise with symbols",
			req:       TestLogRequest{Exercise: "Farmer's walk (DB) - 2/3", Weight: 30, Reps: 1},
			wantError: false,
		},
		{
			name:      "Negative weight",
			req:       TestLogRequest{Exercise: "Row", Weight: -5, Reps: 10},
			wantError: true,
			errorMsg:  "weight must be greater than or equal to 0",
		},
		{
			name:      "Negative reps",
			req:       TestLogRequest{Exercise: "Row", Weight: 5, Reps: -1},
			wantError: true,
			errorMsg:  "reps must be greater than or equal to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_UserRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       TestUserRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Valid user request",
			req:       TestUserRequest{Username: "testUser1", Password: "testUser1"},
			wantError: false,
		},
		{
			name:      "Missing username",
			req:       TestUserRequest{Password: "pw"},
			wantError: true,
			errorMsg:  "username is required",
		},
		{
			name:      "Username with space",
			req:       TestUserRequest{Username: "test user", Password: "pw"},
			wantError: true,
			errorMsg:  "must not contain spaces",
		},
		{
			name:      "Missing password",
			req:       TestUserRequest{Username: "admin2"},
			wantError: true,
			errorMsg:  "password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationErrors_Details(t *testing.T) {
	v := New()

	err := v.Validate(&TestLogRequest{Exercise: "", Weight: -1, Reps: -1})
	require.Error(t, err)

	errs, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, errs, 3)

	assert.Equal(t, "exercise", errs[0].Field)
	assert.Equal(t, "notblank", errs[0].Tag)
	assert.Equal(t, "weight", errs[1].Field)
	assert.Equal(t, "-1", errs[1].Value)
	assert.Contains(t, err.Error(), "; ")
}
