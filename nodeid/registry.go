// Package nodeid leases cluster-unique node identifiers from ZooKeeper so that
// time-based UUIDs stay unique on hosts without a usable hardware address.
package nodeid

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-zookeeper/zk"

	"github.com/Lzww0608/sysuuid"
)

// DefaultRoot is the ZooKeeper path under which services register.
const DefaultRoot = "/sysuuid_node"

// maxWorkerID is the last ZooKeeper sequence number before the signed
// 32-bit counter wraps.
const maxWorkerID = math.MaxInt32

var (
	// ErrClockBackwards indicates that the local clock is behind the last
	// time recorded for this instance.
	ErrClockBackwards = errors.New("nodeid: clock moved backwards")

	// ErrNotRegistered indicates that Register has not completed yet.
	ErrNotRegistered = errors.New("nodeid: instance not registered")
)

// Conn is the subset of *zk.Conn used by the registry.
type Conn interface {
	Exists(path string) (bool, *zk.Stat, error)
	Get(path string) ([]byte, *zk.Stat, error)
	Create(path string, data []byte, flags int32, acl []zk.ACL) (string, error)
	Set(path string, data []byte, version int32) (*zk.Stat, error)
}

// Dial connects to a ZooKeeper ensemble.
func Dial(servers []string, sessionTimeout time.Duration) (*zk.Conn, error) {
	c, _, err := zk.Connect(servers, sessionTimeout)
	if err != nil {
		return nil, fmt.Errorf("nodeid: connect zk failed: %w", err)
	}
	return c, nil
}

// NodeID is a 6-byte UUID node identifier.
type NodeID [6]byte

// FromWorkerID builds a NodeID for a leased worker number. The multicast bit
// is set so it can never collide with an IEEE 802 hardware address
// (RFC 4122 section 4.5).
func FromWorkerID(workerID uint32) NodeID {
	var id NodeID
	id[0] = 0x01
	binary.BigEndian.PutUint32(id[2:], workerID)
	return id
}

// String returns the identifier as colon-separated hex octets.
func (id NodeID) String() string {
	parts := make([]string, len(id))
	for i, b := range id {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, ":")
}

// NodeInfo is the record kept in ZooKeeper and in the local cache file.
type NodeInfo struct {
	LastTime   int64  `json:"last_time"`   // last time this instance was alive, unix ms
	CreateTime int64  `json:"create_time"` // registration time, unix ms
	WorkerID   uint32 `json:"worker_id"`
}

// Registry registers one service instance and keeps its record fresh.
type Registry struct {
	conn     Conn
	root     string
	service  string
	instance string
	cacheDir string
	now      func() time.Time
	logger   *log.Logger

	mu         sync.Mutex
	registered bool
	info       NodeInfo
}

// Option configures a Registry
type Option func(r *Registry)

// WithRoot sets the ZooKeeper root path (DefaultRoot by default). The path
// is made absolute; an empty root registers services at "/".
func WithRoot(root string) Option {
	return func(r *Registry) { r.root = "/" + strings.Trim(root, "/") }
}

// WithCacheDir sets the directory of the local cache file (the working
// directory by default).
func WithCacheDir(dir string) Option {
	return func(r *Registry) { r.cacheDir = dir }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithLogger sets the logger (log.Default() by default).
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// NewRegistry creates a registry for one instance of service. instance must
// be stable across restarts of the same process, e.g. "host:port".
func NewRegistry(conn Conn, service, instance string, opts ...Option) *Registry {
	r := &Registry{
		conn:     conn,
		root:     DefaultRoot,
		service:  service,
		instance: instance,
		cacheDir: ".",
		now:      time.Now,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) servicePath() string {
	return path.Join(r.root, r.service)
}

func (r *Registry) instancePath() string {
	return path.Join(r.servicePath(), "instance-"+sanitize(r.instance))
}

func (r *Registry) cacheFile() string {
	return filepath.Join(r.cacheDir, ".sysuuid_node_"+sanitize(r.service)+"_"+sanitize(r.instance)+".json")
}

func (r *Registry) nowMilli() int64 {
	return r.now().UnixMilli()
}

// Register leases a worker number for the instance and returns its NodeID.
// The number is recovered from ZooKeeper, then from the local cache file,
// and only then freshly allocated. Register fails with ErrClockBackwards if
// the clock is behind the last recorded time.
func (r *Registry) Register() (NodeID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensurePath(r.servicePath()); err != nil {
		return NodeID{}, err
	}

	nodeKey := r.instancePath()
	exists, _, err := r.conn.Exists(nodeKey)
	if err != nil {
		return NodeID{}, fmt.Errorf("nodeid: check node existence failed: %w", err)
	}

	now := r.nowMilli()
	var info NodeInfo
	if exists {
		data, _, err := r.conn.Get(nodeKey)
		if err != nil {
			return NodeID{}, fmt.Errorf("nodeid: get node info failed: %w", err)
		}
		if err := json.Unmarshal(data, &info); err != nil {
			return NodeID{}, fmt.Errorf("nodeid: decode node info failed: %w", err)
		}
		if now < info.LastTime {
			return NodeID{}, fmt.Errorf("%w: %d < %d", ErrClockBackwards, now, info.LastTime)
		}
		r.logger.Printf("nodeid: recovered worker %d for %s from zk", info.WorkerID, r.instance)
	} else if cached, err := r.loadLocalCache(); err == nil {
		if now < cached.LastTime {
			return NodeID{}, fmt.Errorf("%w: %d < %d", ErrClockBackwards, now, cached.LastTime)
		}
		info = cached
		r.logger.Printf("nodeid: recovered worker %d for %s from local cache", info.WorkerID, r.instance)
	} else {
		workerID, err := r.allocate()
		if err != nil {
			return NodeID{}, err
		}
		info = NodeInfo{WorkerID: workerID, CreateTime: now}
		r.logger.Printf("nodeid: allocated worker %d for %s", workerID, r.instance)
	}
	info.LastTime = now

	data, err := json.Marshal(info)
	if err != nil {
		return NodeID{}, err
	}
	if exists {
		_, err = r.conn.Set(nodeKey, data, -1)
	} else {
		_, err = r.conn.Create(nodeKey, data, 0, zk.WorldACL(zk.PermAll))
	}
	if err != nil {
		return NodeID{}, fmt.Errorf("nodeid: register node info failed: %w", err)
	}

	if err := r.saveLocalCache(info); err != nil {
		r.logger.Printf("nodeid: save local cache failed: %v", err)
	}
	r.info = info
	r.registered = true
	return FromWorkerID(info.WorkerID), nil
}

// allocate draws a new worker number from a sequential znode.
func (r *Registry) allocate() (uint32, error) {
	created, err := r.conn.Create(path.Join(r.servicePath(), "worker-"), nil, zk.FlagSequence, zk.WorldACL(zk.PermAll))
	if err != nil {
		return 0, fmt.Errorf("nodeid: allocate worker failed: %w", err)
	}
	seq := created[strings.LastIndex(created, "-")+1:]
	n, err := strconv.ParseUint(seq, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("nodeid: unexpected sequence node %q: %w", created, err)
	}
	if n > maxWorkerID {
		return 0, fmt.Errorf("nodeid: worker sequence %d exhausted", n)
	}
	return uint32(n), nil
}

// NodeID returns the identifier leased by Register.
func (r *Registry) NodeID() (NodeID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.registered {
		return NodeID{}, ErrNotRegistered
	}
	return FromWorkerID(r.info.WorkerID), nil
}

// Install applies the leased identifier to time-based generation of the
// system facility.
func (r *Registry) Install() error {
	id, err := r.NodeID()
	if err != nil {
		return err
	}
	if !sysuuid.SetNodeID(id[:]) {
		return fmt.Errorf("nodeid: node id %s rejected", id)
	}
	r.logger.Printf("nodeid: installed node id %s", id)
	return nil
}

// Run refreshes the instance record every interval until ctx is done. A
// clock that moved behind the last recorded time is logged and the beat is
// skipped. ZooKeeper write failures are logged and retried on the next beat.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	if _, err := r.NodeID(); err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.beat()
		}
	}
}

func (r *Registry) beat() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowMilli()
	if now < r.info.LastTime {
		r.logger.Printf("nodeid: clock rollback detected during heartbeat, local: %d, last: %d", now, r.info.LastTime)
		return
	}
	info := r.info
	info.LastTime = now
	data, err := json.Marshal(info)
	if err != nil {
		r.logger.Printf("nodeid: encode node info failed: %v", err)
		return
	}
	if _, err := r.conn.Set(r.instancePath(), data, -1); err != nil {
		r.logger.Printf("nodeid: heartbeat failed: %v", err)
		return
	}
	r.info = info
	if err := r.saveLocalCache(info); err != nil {
		r.logger.Printf("nodeid: save local cache failed: %v", err)
	}
}

// ensurePath creates p and its parents if needed.
func (r *Registry) ensurePath(p string) error {
	current := ""
	for _, part := range strings.Split(strings.Trim(p, "/"), "/") {
		current += "/" + part
		exists, _, err := r.conn.Exists(current)
		if err != nil {
			return fmt.Errorf("nodeid: check path %s failed: %w", current, err)
		}
		if exists {
			continue
		}
		_, err = r.conn.Create(current, []byte{}, 0, zk.WorldACL(zk.PermAll))
		if err != nil && !errors.Is(err, zk.ErrNodeExists) {
			return fmt.Errorf("nodeid: create path %s failed: %w", current, err)
		}
	}
	return nil
}

func (r *Registry) saveLocalCache(info NodeInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return os.WriteFile(r.cacheFile(), data, 0o644)
}

func (r *Registry) loadLocalCache() (NodeInfo, error) {
	var info NodeInfo
	data, err := os.ReadFile(r.cacheFile())
	if err != nil {
		return info, err
	}
	if err := json.Unmarshal(data, &info); err != nil {
		return info, err
	}
	return info, nil
}

// sanitize makes s usable as a single znode or file name component.
func sanitize(s string) string {
	return strings.NewReplacer("/", "_", ":", "_", `\`, "_").Replace(s)
}
