// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package dom_test

import "time"

func time2007() time.Time {
	return time.Date(2007, time.February, 23, 12, 14, 33, 0, time.UTC)
}
