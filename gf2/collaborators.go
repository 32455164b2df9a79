/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package gf2

// This file declares the contracts this package expects from, or
// exposes to, systems outside its scope: key construction, ciphertext
// envelopes, and the bit-matrix linear-algebra library that wraps a
// Function's output. None of their bodies are implemented here — see
// spec.md §1 and §6 and DESIGN.md's "gf2.collaborators.go" entry.

// KeyMatrix is the contract the bit-matrix linear-algebra library
// exposes so that higher layers can wrap a Function's output
// linearly. Implementations operate over GF(2): Multiply applies the
// matrix to a BitVec, Transpose and NullSpace/Inverse support the matrix
// algebra a private-key construction needs once it has a Function in
// hand. This package does not implement KeyMatrix; it only consumes
// one where a caller supplies it.
type KeyMatrix interface {
	// Multiply returns the BitVec obtained by applying the matrix to v.
	Multiply(v BitVec) (BitVec, error)
	// Transpose returns the transposed matrix.
	Transpose() KeyMatrix
	// NullSpace returns a basis for the matrix's null space over GF(2).
	NullSpace() ([]BitVec, error)
	// Inverse returns the matrix's inverse, if one exists.
	Inverse() (KeyMatrix, error)
}

// RandomFunctionFactory is the contract a random Function generator
// exposes. The randfunc package provides a concrete, deterministic
// implementation; production key-generation layers outside this
// module's scope may provide others (e.g. backed by a CSPRNG).
type RandomFunctionFactory interface {
	// Random returns a Function over inputLen inputs and outputLen
	// outputs whose monomials all have order <= degree.
	Random(inputLen, outputLen, degree int) (*Function, error)
}

// CipherEnvelope is the contract a ciphertext envelope exposes to
// transport the result of evaluating a Function without this package
// needing to know anything about the envelope's wire format.
type CipherEnvelope interface {
	// Wrap packages v as ciphertext, returning an opaque transport
	// representation.
	Wrap(v BitVec) ([]byte, error)
	// Unwrap recovers the BitVec a previous Wrap produced.
	Unwrap(data []byte) (BitVec, error)
}
