// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types raffle records, actions, receipts and errors
package types

import (
	"reflect"

	"github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/types"
)

var (
	tlog = log.New("module", "exectype."+RaffleX)

	actionTypeMap = map[string]int32{
		"Create":       RaffleActionCreate,
		"DepositPrize": RaffleActionDepositPrize,
		"Buy":          RaffleActionBuy,
		"Finalize":     RaffleActionFinalize,
		"Claim":        RaffleActionClaim,
		"Cancel":       RaffleActionCancel,
	}

	logMap = map[int32]*types.LogInfo{
		TyLogRaffleCreate:   {Ty: reflect.TypeOf(ReceiptRaffle{}), Name: "LogRaffleCreate"},
		TyLogRaffleDeposit:  {Ty: reflect.TypeOf(ReceiptRaffle{}), Name: "LogRaffleDeposit"},
		TyLogRaffleBuy:      {Ty: reflect.TypeOf(ReceiptRaffle{}), Name: "LogRaffleBuy"},
		TyLogRaffleFinalize: {Ty: reflect.TypeOf(ReceiptRaffle{}), Name: "LogRaffleFinalize"},
		TyLogRaffleClaim:    {Ty: reflect.TypeOf(ReceiptRaffle{}), Name: "LogRaffleClaim"},
		TyLogRaffleCancel:   {Ty: reflect.TypeOf(ReceiptRaffle{}), Name: "LogRaffleCancel"},
	}

	kindLogTy = map[string]int32{
		EventRaffleCreated:   TyLogRaffleCreate,
		EventPrizeDeposited:  TyLogRaffleDeposit,
		EventTicketPurchased: TyLogRaffleBuy,
		EventRaffleFinalized: TyLogRaffleFinalize,
		EventPrizeClaimed:    TyLogRaffleClaim,
		EventRaffleCancelled: TyLogRaffleCancel,
	}
)

//RaffleType executor type of raffle
type RaffleType struct {
	*types.ExecTypeBase
}

//NewType new
func NewType() *RaffleType {
	return &RaffleType{
		ExecTypeBase: types.NewExecTypeBase(RaffleX, func() interface{} { return &RaffleAction{} }, actionTypeMap, logMap),
	}
}

//IsRaffleLog whether ty is a raffle event log
func IsRaffleLog(ty int32) bool {
	_, ok := logMap[ty]
	return ok
}

//LogTy receipt log ty of an event kind
func LogTy(kind string) int32 {
	return kindLogTy[kind]
}

//DecodeEvent decode a raffle receipt log
func DecodeEvent(log *types.ReceiptLog) (*ReceiptRaffle, error) {
	if !IsRaffleLog(log.Ty) {
		return nil, types.ErrActionNotSupport
	}
	var r ReceiptRaffle
	if err := types.Decode(log.Log, &r); err != nil {
		tlog.Error("DecodeEvent", "ty", log.Ty, "err", err)
		return nil, err
	}
	return &r, nil
}

func newTx(action *RaffleAction) *types.Transaction {
	return NewType().CreateTx(action, types.RandNonce())
}

//CreateRaffleCreateTx unsigned create tx
func CreateRaffleCreateTx(v *RaffleCreate) *types.Transaction {
	return newTx(&RaffleAction{Ty: RaffleActionCreate, Create: v})
}

//CreateRaffleDepositTx unsigned deposit tx
func CreateRaffleDepositTx(raffleID int64) *types.Transaction {
	return newTx(&RaffleAction{Ty: RaffleActionDepositPrize, DepositPrize: &RaffleDepositPrize{RaffleID: raffleID}})
}

//CreateRaffleBuyTx unsigned buy tx
func CreateRaffleBuyTx(raffleID, quantity int64) *types.Transaction {
	return newTx(&RaffleAction{Ty: RaffleActionBuy, Buy: &RaffleBuy{RaffleID: raffleID, Quantity: quantity}})
}

//CreateRaffleFinalizeTx unsigned finalize tx
func CreateRaffleFinalizeTx(raffleID int64, source string) *types.Transaction {
	return newTx(&RaffleAction{Ty: RaffleActionFinalize, Finalize: &RaffleFinalize{RaffleID: raffleID, RandomnessSource: source}})
}

//CreateRaffleClaimTx unsigned claim tx
func CreateRaffleClaimTx(raffleID int64) *types.Transaction {
	return newTx(&RaffleAction{Ty: RaffleActionClaim, Claim: &RaffleClaim{RaffleID: raffleID}})
}

//CreateRaffleCancelTx unsigned cancel tx
func CreateRaffleCancelTx(raffleID int64) *types.Transaction {
	return newTx(&RaffleAction{Ty: RaffleActionCancel, Cancel: &RaffleCancel{RaffleID: raffleID}})
}
