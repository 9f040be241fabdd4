// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package dom is a mutable native Ion tree. Values are built and edited
// in place, then frozen with MakeReadOnly so they can be wrapped as
// element.Elements without being copied.
package dom
