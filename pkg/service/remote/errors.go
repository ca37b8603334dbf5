package remote

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrContractVersion is returned when the backend reports a contract
	// version other than the one this client speaks.
	ErrContractVersion = goerr.New("contract version mismatch")

	// ErrNotFound is returned when the backend answers 404 for the
	// requested resource.
	ErrNotFound = goerr.New("resource not found on remote")

	// ErrRemote is returned for any other non-2xx backend response.
	ErrRemote = goerr.New("remote request failed")
)
