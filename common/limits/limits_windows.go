// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows
// +build windows

package limits

// SetLimits nothing to raise on windows
func SetLimits() error {
	return nil
}
