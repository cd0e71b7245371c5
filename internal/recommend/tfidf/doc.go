// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

/*
Package tfidf implements the inference side of a fitted TF-IDF text model.

A Vectorizer is reconstructed from an exported model (vocabulary, IDF
weights and analyzer settings) and turns query text into a SparseVector.
A Matrix holds the row-normalized garment vectors of one clothing type in
compressed sparse row form; DotRows scores a query against every row.

# Analyzers

Three analyzers are supported, mirroring the common fitted-model formats:

  - word: regular-expression tokens, optionally combined into word n-grams
  - char: character n-grams over the whitespace-normalized text
  - char_wb: character n-grams built inside space-padded word boundaries

The default word token pattern matches runs of two or more Unicode letters,
digits or underscores.

# Determinism

Transform and DotRows perform no randomized or order-dependent work: given
the same model and input they produce bit-identical output.

Fitting a model is not part of this package; see the tfidftest package for
a minimal fitter used to build fixtures.
*/
package tfidf
