package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrBoardNotFound = errors.New("board not found")
	ErrCardNotFound  = errors.New("card not found")

	// Referential errors
	ErrStageNotInBoard = errors.New("stage does not belong to board")
	ErrTagNotInBoard   = errors.New("tag does not belong to board")
	ErrUnknownPartner  = errors.New("partner not found in directory")
	ErrUnknownMention  = errors.New("mentioned partner not found in directory")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")

	// Permission errors
	ErrPermissionDenied = errors.New("actor is not allowed to write to the board")

	// Concurrency errors
	ErrStaleMutation = errors.New("card was modified after the caller's read")
)

// Context keys for error values
const (
	BoardIDKey = "board_id"
	CardIDKey  = "card_id"
	StageIDKey = "stage_id"
	TagIDKey   = "tag_id"
	EmailKey   = "email"
)
