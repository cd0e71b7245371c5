// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

/*
Package storage loads per-segment model artifacts into garment indexes.

# Storage Format

Each segment is one JSON document, optionally gzip compressed:

	{model_dir}/{segment}_model.json.gz
	{model_dir}/{segment}_model.json

The document holds the garment catalogue, the fitted TF-IDF sub-index of
every clothing type (analyzer settings, vocabulary, IDF weights, CSR matrix
and row keys), the outfit records and, optionally, precomputed membership
and co-occurrence relations. When relations are omitted they are derived
from the outfits at load time.

# Integrity

A sidecar file "{artifact}.sha256" may hold the hex SHA-256 digest of the
uncompressed JSON. When present it is verified on load; RequireChecksum
makes it mandatory.

# Thread Safety

A Store is safe for concurrent use. Loading does not mutate the Store.
*/
package storage
