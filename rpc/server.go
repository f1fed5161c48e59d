// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc json-rpc over http in front of the executor
package rpc

import (
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"

	"github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/executor"
	"github.com/33cn/raffle/pluginmgr"
	"github.com/33cn/raffle/types"
	"github.com/kevinms/leakybucket-go"
	"github.com/rs/cors"
)

var rlog = log.New("module", "rpc")

// HTTPConn adapt HTTP connection to ReadWriteCloser
type HTTPConn struct {
	in  io.Reader
	out io.Writer
}

func (c *HTTPConn) Read(p []byte) (n int, err error)  { return c.in.Read(p) }
func (c *HTTPConn) Write(d []byte) (n int, err error) { return c.out.Write(d) }

// Close nothing to close, the http server owns the connection
func (c *HTTPConn) Close() error { return nil }

// JSONRPCServer a json rpcserver object
type JSONRPCServer struct {
	cfg       *types.RPC
	exec      *executor.Executor
	s         *rpc.Server
	l         net.Listener
	whitelist map[string]bool
	limiter   *leakybucket.Collector
	mu        sync.Mutex
}

// NewJSONRPCServer register Node and the services of every dapp plugin
func NewJSONRPCServer(cfg *types.RPC, exec *executor.Executor) (*JSONRPCServer, error) {
	j := &JSONRPCServer{
		cfg:       cfg,
		exec:      exec,
		s:         rpc.NewServer(),
		whitelist: make(map[string]bool),
	}
	for _, ip := range cfg.Whitelist {
		j.whitelist[ip] = true
	}
	if cfg.IPLimit > 0 {
		j.limiter = leakybucket.NewCollector(cfg.IPLimit, cfg.IPBurst, true)
	}
	if err := j.s.RegisterName("Node", &Node{exec: exec}); err != nil {
		return nil, err
	}
	pluginmgr.AddRPC(j)
	return j, nil
}

// GetExecutor the executor behind the server
func (j *JSONRPCServer) GetExecutor() *executor.Executor {
	return j.exec
}

// JRPC the net/rpc server services are registered on
func (j *JSONRPCServer) JRPC() *rpc.Server {
	return j.s
}

func (j *JSONRPCServer) checkIPWhitelist(addr string) bool {
	//回环网络直接允许
	ip := net.ParseIP(addr)
	if ip.IsLoopback() {
		return true
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		addr = ipv4.String()
	}
	if j.whitelist["*"] || j.whitelist["0.0.0.0"] {
		return true
	}
	return j.whitelist[addr]
}

// allow one more request from ip, always true without a limiter
func (j *JSONRPCServer) allow(ip string) bool {
	if j.limiter == nil {
		return true
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.limiter.Remaining(ip) <= 0 {
		return false
	}
	j.limiter.Add(ip, 1)
	return true
}

// ServeHTTP one json-rpc request per http post
func (j *JSONRPCServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if !j.checkIPWhitelist(ip) {
		rlog.Error("ServeHTTP", "reject ip", ip)
		http.Error(w, "reject", http.StatusUnauthorized)
		return
	}
	if !j.allow(ip) {
		rlog.Debug("ServeHTTP", "rate limited", ip)
		http.Error(w, types.ErrRateLimited.Error(), http.StatusTooManyRequests)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body := http.MaxBytesReader(w, r.Body, 2*types.MaxTxSize)
	serverCodec := jsonrpc.NewServerCodec(&HTTPConn{in: body, out: w})
	w.Header().Set("Content-type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := j.s.ServeRequest(serverCodec); err != nil {
		rlog.Debug("Error while serving JSON request", "err", err)
	}
}

// Handler the json-rpc handler, wrapped with cors when origins are configured
func (j *JSONRPCServer) Handler() http.Handler {
	if len(j.cfg.CorsOrigins) == 0 {
		return j
	}
	co := cors.New(cors.Options{
		AllowedOrigins: j.cfg.CorsOrigins,
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return co.Handler(j)
}

// Listen start serving on JrpcBindAddr, returns the bound port
func (j *JSONRPCServer) Listen() (int, error) {
	listener, err := net.Listen("tcp", j.cfg.JrpcBindAddr)
	if err != nil {
		return 0, err
	}
	j.l = listener
	go func() {
		err := http.Serve(listener, j.Handler())
		if err != nil {
			rlog.Info("JSONRPCServer stop", "err", err)
		}
	}()
	port := listener.Addr().(*net.TCPAddr).Port
	rlog.Info("JSONRPCServer Listen", "addr", j.cfg.JrpcBindAddr, "port", port)
	return port, nil
}

// Close json rpcserver close
func (j *JSONRPCServer) Close() {
	if j.l != nil {
		if err := j.l.Close(); err != nil {
			rlog.Error("JSONRPCServer close", "err", err)
		}
	}
}
