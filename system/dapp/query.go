// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"encoding/json"
	"reflect"

	"github.com/33cn/raffle/types"
	"github.com/pkg/errors"
)

func (d *DriverBase) queryMethod(funcname string) (reflect.Method, error) {
	funcmap := d.child.GetFuncMap()
	funcname = "Query_" + funcname
	method, ok := funcmap[funcname]
	if !ok {
		elog.Error(funcname+" funcname not find", "func", funcname)
		return method, types.ErrQueryNotSupport
	}
	ty := method.Type
	if ty.NumIn() != 2 {
		elog.Error(funcname+" err num in param", "num", ty.NumIn())
		return method, types.ErrQueryNotSupport
	}
	if ty.In(1).Kind() != reflect.Ptr {
		elog.Error(funcname + "  param is not pointer")
		return method, types.ErrQueryNotSupport
	}
	return method, nil
}

// Query decode params into the Query_<funcname> argument and call it
func (d *DriverBase) Query(funcname string, params []byte) (msg interface{}, err error) {
	method, err := d.queryMethod(funcname)
	if err != nil {
		return nil, err
	}
	in := reflect.New(method.Type.In(1).Elem())
	if len(params) > 0 {
		if err := types.Decode(params, in.Interface()); err != nil {
			return nil, errors.Wrapf(types.ErrInvalidParam, "decode %s params: %v", funcname, err)
		}
	}
	return callQueryFunc(d.childValue, method, in)
}

// QueryJSON same as Query but params are json, used by the rpc layer
func QueryJSON(d Driver, funcname string, params json.RawMessage) (interface{}, error) {
	base, ok := baseOf(d)
	if !ok {
		return nil, types.ErrQueryNotSupport
	}
	method, err := base.queryMethod(funcname)
	if err != nil {
		return nil, err
	}
	in := reflect.New(method.Type.In(1).Elem())
	if len(params) > 0 {
		if err := json.Unmarshal(params, in.Interface()); err != nil {
			return nil, errors.Wrapf(types.ErrInvalidParam, "decode %s params: %v", funcname, err)
		}
	}
	return callQueryFunc(base.childValue, method, in)
}

type baser interface {
	base() *DriverBase
}

func (d *DriverBase) base() *DriverBase {
	return d
}

func baseOf(d Driver) (*DriverBase, bool) {
	b, ok := d.(baser)
	if !ok {
		return nil, false
	}
	return b.base(), true
}

func callQueryFunc(this reflect.Value, f reflect.Method, in reflect.Value) (reply interface{}, err error) {
	valueret := f.Func.Call([]reflect.Value{this, in})
	if !types.IsOK(valueret, 2) {
		return nil, types.ErrMethodReturnType
	}
	//参数1
	r1 := valueret[0].Interface()
	if r1 != nil && !types.IsNilVal(valueret[0]) {
		reply = r1
	}
	//参数2
	r2 := valueret[1].Interface()
	if r2 != nil {
		if r, ok := r2.(error); ok {
			return nil, r
		}
		return nil, types.ErrMethodReturnType
	}
	if reply == nil {
		return nil, types.ErrNotFound
	}
	return reply, nil
}
