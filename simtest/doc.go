// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing sim.Kernel
// wirings: driving a kernel with deterministic or random input vectors,
// recording the resulting signal traces, and comparing two independent
// wirings of the same logical part against each other.
package simtest
