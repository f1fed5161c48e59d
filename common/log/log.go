// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log 日志相关接口以及函数
package log

import (
	"sync"

	"github.com/33cn/raffle/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/mattn/go-colorable"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu sync.Mutex
	// 保存文件日志的引用，重新设置时关闭旧文件
	rotateLogger *lumberjack.Logger
)

//Logger alias so callers do not import log15 directly
type Logger = log15.Logger

//SetLogLevel 设置控制台日志输出级别
func SetLogLevel(logLevel string) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	log15.Root().SetHandler(getConsoleLogHandler(logLevel))
}

//SetFileLog 设置文件日志和控制台日志信息
func SetFileLog(cfg *types.Log) {
	if cfg == nil {
		cfg = &types.Log{LogFile: "logs/raffle.log"}
	}
	if cfg.LogFile == "" {
		SetLogLevel(cfg.LogConsoleLevel)
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fillDefaultValue(cfg)
	closeFile()
	log15.Root().SetHandler(log15.MultiHandler(getConsoleLogHandler(cfg.LogConsoleLevel), getFileLogHandler(cfg)))
}

// 保证默认性况下为error级别，防止打印太多日志
func fillDefaultValue(cfg *types.Log) {
	if cfg.Loglevel == "" {
		cfg.Loglevel = log15.LvlError.String()
	}
	if cfg.LogConsoleLevel == "" {
		cfg.LogConsoleLevel = log15.LvlError.String()
	}
}

//getConsoleLogHandler 彩色终端输出
func getConsoleLogHandler(logLevel string) log15.Handler {
	return log15.LvlFilterHandler(
		getLevel(logLevel),
		log15.StreamHandler(colorable.NewColorableStdout(), log15.TerminalFormat()),
	)
}

func getFileLogHandler(cfg *types.Log) log15.Handler {
	rotateLogger = &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    int(cfg.MaxFileSize),
		MaxBackups: int(cfg.MaxBackups),
		MaxAge:     int(cfg.MaxAge),
		LocalTime:  cfg.LocalTime,
		Compress:   cfg.Compress,
	}

	fileh := log15.LvlFilterHandler(
		getLevel(cfg.Loglevel),
		log15.StreamHandler(rotateLogger, log15.LogfmtFormat()),
	)

	// 增加打印调用源文件、方法和代码行的判断
	if cfg.CallerFile {
		fileh = log15.CallerFileHandler(fileh)
	}
	if cfg.CallerFunction {
		fileh = log15.CallerFuncHandler(fileh)
	}
	return fileh
}

func closeFile() {
	if rotateLogger != nil {
		rotateLogger.Close()
		rotateLogger = nil
	}
}

//Close flush and close the log file, if any
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
}

func getLevel(lvlString string) log15.Lvl {
	lvl, err := log15.LvlFromString(lvlString)
	if err != nil {
		// 日志级别配置不正确时默认为error级别
		return log15.LvlError
	}
	return lvl
}

//New new
func New(ctx ...interface{}) Logger {
	return log15.Root().New(ctx...)
}
