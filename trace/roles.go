// Copyright The LTTng Authors
// SPDX-License-Identifier: Apache-2.0

package trace

// IntegerRole tags an Integer field with a well-known meaning a consumer can look
// for without depending on the field's name. An Integer may carry any number of
// roles (the model stores them as a multiset, i.e. a plain slice: the same role
// could in principle be repeated, though no constructor in this package does so).
type IntegerRole uint8

const (
	RolePacketMagic IntegerRole = iota
	RolePacketStreamID
	RolePacketContextContentSize
	RolePacketContextPacketSize
	RolePacketContextEventsDiscarded
	RolePacketContextPacketSeqNum
	RoleDefaultClockTimestamp
	RolePacketEndDefaultClockTimestamp
	RoleStreamInstanceID
)

// requiresDefaultClock reports whether r can only appear on a field inside a
// StreamClass that names a default clock class.
func (r IntegerRole) requiresDefaultClock() bool {
	return r == RoleDefaultClockTimestamp || r == RolePacketEndDefaultClockTimestamp
}

func hasRole(roles []IntegerRole, target IntegerRole) bool {
	for _, r := range roles {
		if r == target {
			return true
		}
	}
	return false
}
