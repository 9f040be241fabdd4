// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

// Unwrap exposes the node behind a wrapped Element to the tests.
var Unwrap = unwrap
