// Package mhchain is an adaptive Metropolis–Hastings sampler for exploring
// a user-supplied log-posterior over a fixed-dimensional real parameter
// space.
//
// 🚀 What is mhchain?
//
//	A small, dependency-light Markov-chain Monte Carlo driver that brings
//	together:
//		• point    — the Point vector and per-dimension proposal configuration
//		• matrix   — a dense symmetric covariance matrix and its Cholesky factor
//		• rng      — the uniform/Gaussian random source contract
//		• proposal — the adaptive multivariate-Gaussian proposal engine
//		• sampler  — the Metropolis–Hastings accept/reject driver
//		• record   — append-only sinks for accepted samples (CSV, SQLite)
//
// ✨ Why mhchain?
//
//   - Sequential and synchronous by design — no goroutines, no surprises
//   - The adaptive proposal is the centerpiece: running mean/covariance,
//     step-size control toward a target acceptance rate, periodic Cholesky
//     refresh, and numeric safeguards against ill-conditioned covariance
//   - Pluggable log-posterior, RNG, and record sink — the sampler owns no
//     concrete dependency on any of them
//
// Everything lives under dedicated subpackages:
//
//	point/      — Point type, DimConfig (Gaussian/Uniform)
//	matrix/     — SymDense covariance matrix + Cholesky factor
//	rng/        — Source interface + math/rand-backed implementation
//	proposal/   — Adaptor: the adaptive proposal engine
//	sampler/    — Sampler: the Metropolis-Hastings driver
//	record/     — Sink interface, csvsink and sqlitesink implementations
package mhchain
