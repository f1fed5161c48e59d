// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands cli commands shared by every dapp: keys, tx submission
// and node queries
package commands

import (
	"fmt"
	"os"

	"github.com/33cn/raffle/common"
	"github.com/33cn/raffle/common/crypto"
	"github.com/33cn/raffle/rpc/jsonclient"
	rpctypes "github.com/33cn/raffle/rpc/types"
	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// SignType signature type of the cli keys
const SignType = "secp256k1"

// AddSignFlags key and caller flags of a tx command
func AddSignFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("key", "k", "", "private key hex for sign tx")
	cmd.Flags().StringP("caller", "c", "", "caller address of an unsigned tx, accepted only by nodes with sign check disabled")
}

// SignRawTx sign hex tx with key, or set caller when no key given
func SignRawTx(raw, key, caller string) (string, error) {
	data, err := common.FromHex(raw)
	if err != nil {
		return "", errors.Wrap(err, "decode raw tx")
	}
	var tx types.Transaction
	if err := types.Decode(data, &tx); err != nil {
		return "", errors.Wrap(err, "decode raw tx")
	}
	switch {
	case key != "":
		priv, err := privKeyFromHex(key)
		if err != nil {
			return "", err
		}
		tx.Caller = ""
		tx.Sign(crypto.GetType(SignType), priv)
	case caller != "":
		tx.Caller = caller
	default:
		return "", errors.New("required flag(s) \"key\" or \"caller\" not set")
	}
	return common.ToHex(types.Encode(&tx)), nil
}

func privKeyFromHex(key string) (crypto.PrivKey, error) {
	c, err := crypto.New(SignType)
	if err != nil {
		return nil, err
	}
	b, err := common.FromHex(key)
	if err != nil {
		return nil, errors.Wrap(err, "decode private key")
	}
	return c.PrivKeyFromBytes(b)
}

// CreateAndSend build the tx by method, sign it with the cmd flags and send it
func CreateAndSend(cmd *cobra.Command, method string, params interface{}) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	key, _ := cmd.Flags().GetString("key")
	caller, _ := cmd.Flags().GetString("caller")

	rpc, err := jsonclient.NewJSONClient(rpcLaddr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	var raw string
	if err := rpc.Call(method, params, &raw); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "create tx by %s", method))
		return
	}
	signed, err := SignRawTx(raw, key, caller)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	var res rpctypes.ReplyTxResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Node.SendTransaction", &rpctypes.RawParm{Data: signed}, &res)
	ctx.Run()
}

// SendTxCmd send a raw tx
func SendTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Sign and send a raw transaction",
		Run:   sendTx,
	}
	cmd.Flags().StringP("data", "d", "", "raw transaction hex")
	cmd.MarkFlagRequired("data")
	AddSignFlags(cmd)
	return cmd
}

func sendTx(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	data, _ := cmd.Flags().GetString("data")
	key, _ := cmd.Flags().GetString("key")
	caller, _ := cmd.Flags().GetString("caller")
	if key != "" || caller != "" {
		signed, err := SignRawTx(data, key, caller)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		data = signed
	}
	var res rpctypes.ReplyTxResult
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Node.SendTransaction", &rpctypes.RawParm{Data: data}, &res)
	ctx.Run()
}

// DecodeTxCmd decode a raw tx
func DecodeTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a raw transaction",
		Run: func(cmd *cobra.Command, args []string) {
			data, _ := cmd.Flags().GetString("data")
			b, err := common.FromHex(data)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			var tx types.Transaction
			if err := types.Decode(b, &tx); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			fmt.Println(tx.JSON())
		},
	}
	cmd.Flags().StringP("data", "d", "", "raw transaction hex")
	cmd.MarkFlagRequired("data")
	return cmd
}

// TxCmd tx command
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Send or decode raw transactions",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		SendTxCmd(),
		DecodeTxCmd(),
	)
	return cmd
}
