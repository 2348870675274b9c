package diag

import (
	"errors"
	"fmt"
	"os"

	"amberfy/internal/amber"
	"amberfy/internal/shaderjob"
)

// Code is a compact, stable identifier for a class of conversion failure.
// The 1xxx range covers the conversion taxonomy, 2xxx covers IO and parsing.
type Code uint16

const (
	// Unknown marks a failure outside the taxonomy.
	Unknown Code = 0

	ConvUnsupportedType        Code = 1001
	ConvMissingStage           Code = 1002
	ConvAmbiguousJob           Code = 1003
	ConvMalformedComputeBuffer Code = 1004
	ConvInconsistentPair       Code = 1005
	ConvUnknownJobKind         Code = 1006

	IOReadError  Code = 2001
	IOWriteError Code = 2002
	ParseError   Code = 2003
)

// codeDescription holds the short title of each code.
var codeDescription = map[Code]string{
	Unknown:                    "unclassified conversion failure",
	ConvUnsupportedType:        "uniform or SSBO type has no AmberScript equivalent",
	ConvMissingStage:           "shader job lacks a required stage file",
	ConvAmbiguousJob:           "shader job matches more than one kind",
	ConvMalformedComputeBuffer: "compute metadata cannot become an SSBO declaration",
	ConvInconsistentPair:       "reference and variant job kinds disagree",
	ConvUnknownJobKind:         "shader job kind is outside the closed set",
	IOReadError:                "input file could not be read",
	IOWriteError:               "output file could not be written",
	ParseError:                 "shader job JSON is malformed",
}

// ID returns the stable string form of the code, e.g. "AMB1002".
func (c Code) ID() string {
	return fmt.Sprintf("AMB%04d", uint16(c))
}

// Title returns the short description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Unknown]
	}
	return desc
}

// CodeOf classifies err by unwrapping it against the conversion sentinels.
// Order matters: conversion taxonomy first, then parse, then IO, so a
// wrapped chain lands on its most specific class.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return Unknown
	case errors.Is(err, amber.ErrUnsupportedType):
		return ConvUnsupportedType
	case errors.Is(err, amber.ErrMissingRequiredStage):
		return ConvMissingStage
	case errors.Is(err, amber.ErrAmbiguousJob):
		return ConvAmbiguousJob
	case errors.Is(err, amber.ErrMalformedComputeBuffer):
		return ConvMalformedComputeBuffer
	case errors.Is(err, amber.ErrInconsistentTestPair):
		return ConvInconsistentPair
	case errors.Is(err, amber.ErrUnknownJobKind):
		return ConvUnknownJobKind
	case errors.Is(err, shaderjob.ErrInvalidDocument):
		return ParseError
	case errors.Is(err, amber.ErrOutputWrite):
		return IOWriteError
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		return IOReadError
	default:
		return Unknown
	}
}
