package azure

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// notFoundCodes are the ARM error codes that mean the resource genuinely
// does not exist, as opposed to a transport or authorization failure.
// Conflating the two would turn a flaky API call into a duplicate create.
var notFoundCodes = map[string]bool{
	"ResourceNotFound":       true,
	"NotFound":               true,
	"ResourceGroupNotFound":  true,
	"ParentResourceNotFound": true,
	"ServerNotFound":         true,
}

// IsNotFound reports whether err is an ARM "resource does not exist" error.
func IsNotFound(err error) bool {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return false
	}
	if respErr.StatusCode == http.StatusNotFound {
		return true
	}
	return notFoundCodes[respErr.ErrorCode]
}

// IsConflict reports whether err is an ARM conflict (resource busy or being
// mutated by another operation). Conflicts are retryable.
func IsConflict(err error) bool {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return false
	}
	return respErr.StatusCode == http.StatusConflict || respErr.ErrorCode == "Conflict"
}
