// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

// Package logging holds the process-wide zerolog logger.
//
// Call Init once from main with the logging section of the loaded
// configuration. Until then a JSON logger at info level writes to stderr.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logger := logging.Logger()
//	logger.Info().Str("segment", "men").Msg("Index loaded")
//
// Components take a child logger with a fixed component field:
//
//	logger = logging.WithComponent("recommend")
//
// Request-scoped code logs through Ctx, which uses the logger stored by
// ContextWithLogger and adds the request_id stored by ContextWithRequestID:
//
//	ctx = logging.ContextWithNewRequestID(ctx)
//	ctx = logging.ContextWithLogger(ctx, logger)
//	logging.Ctx(ctx).Debug().Msg("Scoring query")
//
// Log chains must end with Msg or Send, otherwise nothing is written.
package logging
