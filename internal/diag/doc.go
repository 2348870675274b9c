// Package diag defines the diagnostic model for batch conversion reporting.
//
// # Purpose
//
//   - Assign every conversion failure a compact, stable code so reports and
//     golden tests do not depend on error message wording.
//   - Collect failures across a batch into a Bag without coupling producers
//     to storage or formatting.
//   - Render a deterministic one-line-per-failure report for CLI output.
//
// # Scope
//
// The package classifies errors, it does not create them: conversion errors
// are born in internal/amber and internal/shaderjob as wrapped sentinels,
// and CodeOf maps them onto codes with errors.Is. No IO, no CLI behaviour.
package diag
