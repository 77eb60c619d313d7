// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command imageview renders camera frames with overlay markers and serves
// the render worker over HTTP.
package main

func main() {
	Execute()
}
