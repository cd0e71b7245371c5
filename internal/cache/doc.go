// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

/*
Package cache provides a generic least recently used cache with TTL expiry.

The recommendation engine uses it to memoize responses for repeated queries.
Because the garment indexes are immutable after load, a cached response
stays correct for the lifetime of the process; the TTL only bounds memory
held by queries that stop recurring.

# Usage

	c := cache.NewLRU[*Response](1024, 10*time.Minute)
	if resp, ok := c.Get(key); ok {
	    return resp
	}
	c.Add(key, resp)

# Complexity

Get, Add and Remove are O(1). Eviction of the least recently used entry
happens on Add when the cache is full; expired entries are dropped lazily
on access or in bulk with CleanupExpired.

# Thread Safety

All methods are safe for concurrent use.
*/
package cache
