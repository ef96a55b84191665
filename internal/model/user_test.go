package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUserResponse(t *testing.T) {
	createdAt := time.Date(2024, 7, 27, 10, 0, 0, 0, time.UTC)
	user := &User{ID: 7, Name: "Sarah Jenkins", Email: "sarah@x.com", Age: 25, CreatedAt: createdAt}

	resp := ToUserResponse(user)

	assert.Equal(t, UserResponse{ID: 7, Name: "Sarah Jenkins", Email: "sarah@x.com", Age: 25, CreatedAt: createdAt}, resp)
}

func TestUserResponse_JSONFieldNames(t *testing.T) {
	resp := UserResponse{ID: 1, Name: "A", Email: "a@x.com", Age: 30, CreatedAt: time.Date(2024, 7, 27, 10, 0, 0, 0, time.UTC)}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":1,"name":"A","email":"a@x.com","age":30,"createdAt":"2024-07-27T10:00:00Z"}`, string(data))
}
