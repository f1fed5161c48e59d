// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/33cn/raffle/common"
	"github.com/33cn/raffle/common/address"
	"github.com/33cn/raffle/common/crypto"
	"github.com/spf13/cobra"
)

// AccountCmd account command
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Key and address tools",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		GenKeyCmd(),
		AddrCmd(),
		ExecAddrCmd(),
	)
	return cmd
}

type keyResult struct {
	PrivKey string `json:"privkey"`
	PubKey  string `json:"pubkey"`
	Addr    string `json:"addr"`
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}

// GenKeyCmd generate a key pair
func GenKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genkey",
		Short: "Generate a secp256k1 private key and its address",
		Run: func(cmd *cobra.Command, args []string) {
			c, err := crypto.New(SignType)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			priv, err := c.GenKey()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			pub := priv.PubKey().Bytes()
			printJSON(&keyResult{
				PrivKey: common.ToHex(priv.Bytes()),
				PubKey:  common.ToHex(pub),
				Addr:    address.PubKeyToAddress(pub).String(),
			})
		},
	}
	return cmd
}

// AddrCmd address of a private key
func AddrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addr",
		Short: "Address of a private key",
		Run: func(cmd *cobra.Command, args []string) {
			key, _ := cmd.Flags().GetString("key")
			priv, err := privKeyFromHex(key)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			fmt.Println(address.PubKeyToAddress(priv.PubKey().Bytes()).String())
		},
	}
	cmd.Flags().StringP("key", "k", "", "private key hex")
	cmd.MarkFlagRequired("key")
	return cmd
}

// ExecAddrCmd address of an executor name
func ExecAddrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execaddr",
		Short: "Address derived from an executor name",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("exec")
			fmt.Println(address.ExecAddress(name))
		},
	}
	cmd.Flags().StringP("exec", "e", "", "executor name, e.g. raffle.escrow.0")
	cmd.MarkFlagRequired("exec")
	return cmd
}
