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

// Package randfunc provides a concrete, deterministic implementation
// of gf2.RandomFunctionFactory: given a fixed key, the same
// (inputLen, outputLen, degree) request always yields the same
// Function. This makes it suitable both for reproducible tests and
// for protocols where multiple parties must agree on a "random"
// function without exchanging it.
package randfunc
