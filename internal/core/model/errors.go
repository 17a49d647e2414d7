package model

import "errors"

var (
	ErrEmptySurfaceForm   = errors.New("mention surface form is empty")
	ErrEmptyCandidateName = errors.New("candidate name is empty")
	ErrEmptyQuestion      = errors.New("disambiguation question is empty")
	ErrMissingEntityID    = errors.New("use_existing resolution requires an entity id")
	ErrUnexpectedEntityID = errors.New("create_new resolution must not carry an entity id")
	ErrInvalidConfidence  = errors.New("confidence components out of range or overall mismatch")
)
