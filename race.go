// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package pcq

// RaceEnabled is true when the race detector is active.
// Unbounded compiles in its single-producer/single-consumer contract guards
// only in race builds; a detected violation panics instead of corrupting
// the queue silently. Tests use the constant to gate guard-specific cases.
const RaceEnabled = true
