// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//Config node configuration, loaded from toml
type Config struct {
	Title   string   `toml:"Title"`
	Log     *Log     `toml:"log"`
	Store   *Store   `toml:"store"`
	RPC     *RPC     `toml:"rpc"`
	Metrics *Metrics `toml:"metrics"`
	Raffle  *Raffle  `toml:"raffle"`
	Token   *Token   `toml:"token"`
}

//Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string `toml:"logFile"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `toml:"maxFileSize"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `toml:"maxBackups"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge uint32 `toml:"maxAge"`
	// 日志文件名是否使用本地时间（否则使用UTC时间）
	LocalTime bool `toml:"localTime"`
	// 历史日志文件是否压缩（压缩格式为gz）
	Compress bool `toml:"compress"`
	// 是否打印调用源文件和行号
	CallerFile bool `toml:"callerFile"`
	// 是否打印调用方法
	CallerFunction bool `toml:"callerFunction"`
}

//Store 存储配置
type Store struct {
	// leveldb, badger or memdb
	Driver  string `toml:"driver"`
	DbPath  string `toml:"dbPath"`
	DbCache int32  `toml:"dbCache"`
}

//RPC rpc配置
type RPC struct {
	JrpcBindAddr string `toml:"jrpcBindAddr"`
	// 白名单，* 表示不限制
	Whitelist []string `toml:"whitelist"`
	// cors 允许的来源，空表示不开启
	CorsOrigins []string `toml:"corsOrigins"`
	// 每个ip每秒允许的请求数，0 表示不限速
	IPLimit float64 `toml:"ipLimit"`
	IPBurst int64   `toml:"ipBurst"`
	// 是否启用签名校验，关闭后交易可以直接指定 caller，仅限测试网络
	EnableSignCheck bool `toml:"enableSignCheck"`
}

//Metrics 监控配置
type Metrics struct {
	EnableMetrics bool   `toml:"enableMetrics"`
	ListenAddr    string `toml:"listenAddr"`
}

//Raffle raffle executor options
type Raffle struct {
	// 只有中奖者本人可以领奖，否则任何人都可以代为领奖，奖金总是发给中奖者
	ClaimByWinnerOnly bool `toml:"claimByWinnerOnly"`
	// 超过 endTime 后拒绝购票
	EnforceEndTime bool `toml:"enforceEndTime"`
	// finalize 未指定随机源时使用
	DefaultRandomness string `toml:"defaultRandomness"`
	// oracle 随机数文件，为空时使用系统随机数
	OracleSeedFile string `toml:"oracleSeedFile"`
}

//Token token ledger options
type Token struct {
	// 是否允许通过 rpc 铸币，仅限测试网络
	AllowMint bool           `toml:"allowMint"`
	Genesis   []*GenesisMint `toml:"genesis"`
}

//GenesisMint 启动时的初始余额
type GenesisMint struct {
	Symbol string `toml:"symbol"`
	Addr   string `toml:"addr"`
	Amount int64  `toml:"amount"`
}

//DefaultConfig defaults for every section, overridden by the toml file
func DefaultConfig() *Config {
	return &Config{
		Title: "raffle",
		Log: &Log{
			Loglevel:        "info",
			LogConsoleLevel: "info",
			LogFile:         "logs/raffle.log",
			MaxFileSize:     300,
			MaxBackups:      100,
			MaxAge:          28,
			LocalTime:       true,
			Compress:        true,
		},
		Store: &Store{
			Driver:  "leveldb",
			DbPath:  "datadir",
			DbCache: 64,
		},
		RPC: &RPC{
			JrpcBindAddr:    "localhost:8801",
			Whitelist:       []string{"127.0.0.1"},
			IPLimit:         50,
			IPBurst:         100,
			EnableSignCheck: true,
		},
		Metrics: &Metrics{
			ListenAddr: "localhost:9101",
		},
		Raffle: &Raffle{
			EnforceEndTime:    true,
			DefaultRandomness: "prng",
		},
		Token: &Token{},
	}
}
