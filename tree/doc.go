// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

// Package tree addresses the values inside an element.StructElement by
// path and edits them. A Tree is immutable: Assoc, Delete, Merge and Edit
// return a new Tree that rebuilds only the containers along the edited
// path and shares everything else with the old one.
//
// Paths are written as slash separated field names with optional
// predicates, for example
//
//	/interfaces/interface[name='eth0']/mtu
//	/interfaces/interface[1]
//	/'field with spaces'/list[0]
//
// An EditOperation is a list of assoc, delete and merge actions. It can be
// computed with Tree.Diff, applied with Tree.Edit and carried around as
// an Element.
package tree
