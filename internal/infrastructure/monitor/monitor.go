package monitor

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"

	"github.com/wilsonA2000/verihome/internal/infrastructure/redisclient"
	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"
)

const defaultInterval = 30 * time.Second

var (
	goroutinesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "verihome_goroutines",
		Help: "Number of live goroutines.",
	})
	heapAllocGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "verihome_heap_alloc_bytes",
		Help: "Bytes of allocated heap objects.",
	})
	heapObjectsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "verihome_heap_objects",
		Help: "Number of allocated heap objects.",
	})
	dbOpenConnsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "verihome_db_open_connections",
		Help: "Open connections in the database pool.",
	})
	dbInUseGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "verihome_db_in_use_connections",
		Help: "Database connections currently in use.",
	})
	dbIdleGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "verihome_db_idle_connections",
		Help: "Idle connections in the database pool.",
	})
	redisTotalConnsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "verihome_redis_total_connections",
		Help: "Total connections in the redis pool.",
	})
	redisPingSecondsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "verihome_redis_ping_seconds",
		Help: "Latency of the most recent redis ping.",
	})
)

// DBStats is the sampled state of the SQL connection pool.
type DBStats struct {
	OpenConnections int   `json:"open_connections"`
	InUse           int   `json:"in_use"`
	Idle            int   `json:"idle"`
	WaitCount       int64 `json:"wait_count"`
}

// RedisStats is the sampled state of the redis pool.
type RedisStats struct {
	TotalConns  uint32  `json:"total_conns"`
	IdleConns   uint32  `json:"idle_conns"`
	PingSeconds float64 `json:"ping_seconds"`
	PingFailed  bool    `json:"ping_failed,omitempty"`
}

// Snapshot is one performance sample of the running service.
type Snapshot struct {
	Timestamp      time.Time   `json:"timestamp"`
	UptimeSeconds  int64       `json:"uptime_seconds"`
	Goroutines     int         `json:"goroutines"`
	HeapAllocBytes uint64      `json:"heap_alloc_bytes"`
	HeapObjects    uint64      `json:"heap_objects"`
	GCCycles       uint32      `json:"gc_cycles"`
	DB             *DBStats    `json:"db,omitempty"`
	Redis          *RedisStats `json:"redis,omitempty"`
}

// Monitor samples runtime, database and redis health on a fixed interval,
// publishes the values as prometheus gauges and keeps the latest snapshot
// for the admin performance endpoint.
type Monitor struct {
	db        *gorm.DB
	redis     *redisclient.Client
	interval  time.Duration
	startedAt time.Time
	logger    logger.Logger

	mu     sync.RWMutex
	latest *Snapshot
}

// NewMonitor creates and returns a new instance of Monitor
func NewMonitor(db *gorm.DB, redis *redisclient.Client, settings *config.MonitorSettings, logger logger.Logger) (*Monitor, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	interval := settings.Interval
	if interval == 0 {
		interval = defaultInterval
	}

	return &Monitor{
		db:        db,
		redis:     redis,
		interval:  interval,
		startedAt: time.Now(),
		logger:    logger,
	}, nil
}

// Run samples on the configured interval until the context is canceled.
// The first sample is taken immediately so the performance endpoint has
// data right after startup.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.collect(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.collect(ctx)
		}
	}
}

// Latest returns the most recent snapshot, or nil before the first sample
func (m *Monitor) Latest() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

func (m *Monitor) collect(ctx context.Context) {
	snap := m.sample(ctx)
	m.publish(snap)

	m.mu.Lock()
	m.latest = snap
	m.mu.Unlock()

	if m.redis != nil {
		cacheCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		// Snapshot outlives two intervals at most, so stale data ages out
		if err := m.redis.StoreMonitorSnapshot(cacheCtx, snap, 2*m.interval); err != nil {
			m.logger.Warn("Failed to cache monitor snapshot: ", err)
		}
		cancel()
	}
}

func (m *Monitor) sample(ctx context.Context) *Snapshot {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	snap := &Snapshot{
		Timestamp:      time.Now().UTC(),
		UptimeSeconds:  int64(time.Since(m.startedAt).Seconds()),
		Goroutines:     runtime.NumGoroutine(),
		HeapAllocBytes: memStats.HeapAlloc,
		HeapObjects:    memStats.HeapObjects,
		GCCycles:       memStats.NumGC,
	}

	if m.db != nil {
		if sqlDB, err := m.db.DB(); err == nil {
			stats := sqlDB.Stats()
			snap.DB = &DBStats{
				OpenConnections: stats.OpenConnections,
				InUse:           stats.InUse,
				Idle:            stats.Idle,
				WaitCount:       stats.WaitCount,
			}
		}
	}

	if m.redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		start := time.Now()
		err := m.redis.Health(pingCtx)
		cancel()

		pool := m.redis.PoolStats()
		snap.Redis = &RedisStats{
			TotalConns:  pool.TotalConns,
			IdleConns:   pool.IdleConns,
			PingSeconds: time.Since(start).Seconds(),
			PingFailed:  err != nil,
		}
	}

	return snap
}

func (m *Monitor) publish(snap *Snapshot) {
	goroutinesGauge.Set(float64(snap.Goroutines))
	heapAllocGauge.Set(float64(snap.HeapAllocBytes))
	heapObjectsGauge.Set(float64(snap.HeapObjects))

	if snap.DB != nil {
		dbOpenConnsGauge.Set(float64(snap.DB.OpenConnections))
		dbInUseGauge.Set(float64(snap.DB.InUse))
		dbIdleGauge.Set(float64(snap.DB.Idle))
	}
	if snap.Redis != nil {
		redisTotalConnsGauge.Set(float64(snap.Redis.TotalConns))
		redisPingSecondsGauge.Set(snap.Redis.PingSeconds)
	}
}
