// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// Is this an exported - upper case - name?
func isExported(name string) bool {
	rune, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(rune)
}

//ListMethod exported methods of action, by name
func ListMethod(action interface{}) map[string]reflect.Method {
	typ := reflect.TypeOf(action)
	methods := make(map[string]reflect.Method)
	for m := 0; m < typ.NumMethod(); m++ {
		method := typ.Method(m)
		mname := method.Name
		// Method must be exported.
		if method.PkgPath != "" || !isExported(mname) {
			continue
		}
		methods[mname] = method
	}
	return methods
}

var nilValue = reflect.ValueOf(nil)

//GetActionValue an action is a struct with a Ty field and one pointer
//field per action name; the field named by Ty carries the payload.
//Returns the action name and the payload.
func GetActionValue(action interface{}, typemap map[string]int32) (string, int32, reflect.Value) {
	v := reflect.Indirect(reflect.ValueOf(action))
	if v.Kind() != reflect.Struct {
		return "", 0, nilValue
	}
	tyField := v.FieldByName("Ty")
	if !tyField.IsValid() || tyField.Kind() != reflect.Int32 {
		return "", 0, nilValue
	}
	ty := int32(tyField.Int())
	for name, t := range typemap {
		if t != ty {
			continue
		}
		field := v.FieldByName(name)
		if !field.IsValid() || field.Kind() != reflect.Ptr {
			return "", 0, nilValue
		}
		// an all-zero payload may be dropped by the encoder
		if field.IsNil() {
			return name, ty, reflect.New(field.Type().Elem())
		}
		return name, ty, field
	}
	return "", 0, nilValue
}

//IsOK reflect call returned n values, all usable
func IsOK(list []reflect.Value, n int) bool {
	if len(list) != n {
		return false
	}
	for i := 0; i < len(list); i++ {
		if !IsNilVal(list[i]) && !list[i].CanInterface() {
			return false
		}
	}
	return true
}

//IsNilVal nil or invalid
func IsNilVal(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
