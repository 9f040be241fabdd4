// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"github.com/benbjohnson/immutable"
)

// metaMap holds the metas of a built Element, nil when there are none.
// Metas are carried along by annotation changes and updates and are
// never looked at by equality, hashing or printing.
type metaMap = *immutable.Map[string, interface{}]

func metasOf(m metaMap) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	out := make(map[string]interface{}, m.Len())
	itr := m.Iterator()
	for !itr.Done() {
		k, v, _ := itr.Next()
		out[k] = v
	}
	return out
}

func metasWith(m metaMap, key string, value interface{}) metaMap {
	if m == nil {
		m = immutable.NewMap[string, interface{}](nil)
	}
	return m.Set(key, value)
}

func metasMerge(m metaMap, more map[string]interface{}) metaMap {
	if len(more) == 0 {
		return m
	}
	b := immutable.NewMapBuilder[string, interface{}](nil)
	if m != nil {
		itr := m.Iterator()
		for !itr.Done() {
			k, v, _ := itr.Next()
			b.Set(k, v)
		}
	}
	for k, v := range more {
		b.Set(k, v)
	}
	return b.Map()
}
