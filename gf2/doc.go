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

// Package gf2 implements vector-valued Boolean polynomial functions
// over GF(2): multivariate polynomials whose inputs and outputs are
// bit vectors, with addition being XOR and multiplication being AND.
//
// A Function is represented sparsely as a list of Monomials paired
// with the output-bit contribution each one XORs in when its input
// variables are all set. The package supports pointwise algebra (Xor,
// And) and symbolic composition (Compose), which re-expresses every
// monomial of an outer Function in terms of an inner Function's
// input variables.
//
// Key construction, ciphertext envelopes, and bit-matrix linear
// algebra live outside this package; see collaborators.go for the
// interfaces those systems are expected to satisfy or consume.
package gf2
