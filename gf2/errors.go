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

import "errors"

// ErrShapeMismatch is returned when two Functions (or a Function and a
// BitVec) being combined do not have compatible input or output
// lengths. Reported at call entry, before any allocation.
var ErrShapeMismatch = errors.New("gf2: shape mismatch")

// ErrInternalInvariant is returned when the Composer cannot derive an
// expansion for a monomial it requires. This is a fatal internal
// error: the caller should not retry Compose with the same inputs.
var ErrInternalInvariant = errors.New("gf2: internal invariant violation")

// ErrWorkerFault is returned when a pooled task of Compose or
// ApplyParallel panics or fails. It is fatal for the operation that
// triggered it.
var ErrWorkerFault = errors.New("gf2: worker fault")
