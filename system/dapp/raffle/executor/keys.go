// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import "fmt"

// state db keys

func calcRaffleKey(raffleID int64) []byte {
	return []byte(fmt.Sprintf("mavl-raffle-id-%018d", raffleID))
}

func calcNextIDKey() []byte {
	return []byte("mavl-raffle-nextid")
}

func calcTicketCountKey(raffleID int64) []byte {
	return []byte(fmt.Sprintf("mavl-raffle-tickets-%018d", raffleID))
}

func calcTicketKey(raffleID, index int64) []byte {
	return []byte(fmt.Sprintf("mavl-raffle-ticket-%018d-%018d", raffleID, index))
}

// local db keys

func calcStatusPrefix(status int32) []byte {
	return []byte(fmt.Sprintf("LODB-raffle-status:%d:", status))
}

func calcStatusKey(status int32, raffleID int64) []byte {
	return []byte(fmt.Sprintf("LODB-raffle-status:%d:%018d", status, raffleID))
}

func calcCreatorPrefix(addr string) []byte {
	return []byte(fmt.Sprintf("LODB-raffle-creator:%s:", addr))
}

func calcCreatorKey(addr string, raffleID int64) []byte {
	return []byte(fmt.Sprintf("LODB-raffle-creator:%s:%018d", addr, raffleID))
}

func calcBuyerPrefix(addr string) []byte {
	return []byte(fmt.Sprintf("LODB-raffle-buyer:%s:", addr))
}

func calcBuyerKey(addr string, raffleID, index int64) []byte {
	return []byte(fmt.Sprintf("LODB-raffle-buyer:%s:%018d:%018d", addr, raffleID, index))
}
