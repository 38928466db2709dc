package azure

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"404", &azcore.ResponseError{StatusCode: http.StatusNotFound}, true},
		{"ResourceNotFound code", &azcore.ResponseError{StatusCode: http.StatusBadRequest, ErrorCode: "ResourceNotFound"}, true},
		{"ResourceGroupNotFound code", &azcore.ResponseError{StatusCode: http.StatusBadRequest, ErrorCode: "ResourceGroupNotFound"}, true},
		{"ServerNotFound code", &azcore.ResponseError{StatusCode: http.StatusBadRequest, ErrorCode: "ServerNotFound"}, true},
		{"403 is not absence", &azcore.ResponseError{StatusCode: http.StatusForbidden, ErrorCode: "AuthorizationFailed"}, false},
		{"500 is not absence", &azcore.ResponseError{StatusCode: http.StatusInternalServerError}, false},
		{"wrapped 404", fmt.Errorf("probing: %w", &azcore.ResponseError{StatusCode: http.StatusNotFound}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(&azcore.ResponseError{StatusCode: http.StatusConflict}))
	assert.True(t, IsConflict(&azcore.ResponseError{StatusCode: http.StatusBadRequest, ErrorCode: "Conflict"}))
	assert.False(t, IsConflict(&azcore.ResponseError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsConflict(errors.New("boom")))
	assert.False(t, IsConflict(nil))
}
