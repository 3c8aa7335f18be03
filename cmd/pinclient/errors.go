// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package main

import "errors"

// Exit codes for the CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitRequestFailed indicates a request, lookup or trust decision failed.
	ExitRequestFailed = 1

	// ExitConfigError indicates a configuration or input validation error.
	ExitConfigError = 2
)

// Sentinel errors for CLI operations.
var (
	// ErrInvalidInput is returned when required input parameters are missing or invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfigFile is returned when the --config file cannot be read or decoded.
	ErrConfigFile = errors.New("config file error")

	// ErrRequestFailed is returned when a request through the pinned client fails.
	ErrRequestFailed = errors.New("request failed")

	// ErrLookupFailed is returned when a TLSA lookup fails.
	ErrLookupFailed = errors.New("lookup failed")

	// ErrFileOperation is returned when a file read or write operation fails.
	ErrFileOperation = errors.New("file operation failed")
)
