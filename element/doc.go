// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package element implements an immutable object model for Ion data. The
// Elements in this library are immutable. This means that updating a struct
// or a list will yield a new copy with the changes made, this is made
// efficient by sharing the untouched children of the old value with the new
// one. Elements may be built directly from go values or may wrap a read-only
// native tree (see Node) without converting it; wrapped and built Elements
// of the same data are equal, hash the same and print the same.
package element
