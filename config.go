package rtree

import (
	"fmt"
	"math"

	"github.com/npillmayer/rtree/split"
)

const (
	// DefaultMaxEntries is the node capacity used when Config.MaxEntries is 0.
	DefaultMaxEntries = 16
	// DefaultReinsertFraction is the share of entries an R*-tree removes from
	// an overflowing node for reinsertion, when Config.ReinsertFraction is 0.
	DefaultReinsertFraction = 0.3
)

// Config configures a tree. The zero value selects a quadratic-split tree
// with default capacity.
type Config struct {
	// MaxEntries is the maximum number of entries per node. 0 selects
	// DefaultMaxEntries.
	MaxEntries int
	// MinEntries is the minimum number of entries of a non-root node.
	// 0 selects 30% of MaxEntries, but at least 1.
	MinEntries int
	// Split selects the split heuristic. split.Topological turns the tree
	// into an R*-tree, including forced reinsertion.
	Split split.Heuristic
	// ReinsertFraction is the share of MaxEntries removed for forced
	// reinsertion (R* only). 0 selects DefaultReinsertFraction, a negative
	// value disables forced reinsertion.
	ReinsertFraction float64
	// MaxNodes limits the number of live nodes. 0 means no limit.
	MaxNodes int
	// Dims fixes the dimensionality of the tree. 0 adopts the dimension of
	// the first value inserted.
	Dims int
}

// DefaultConfig returns the effective configuration of the zero Config.
func DefaultConfig() Config {
	return Config{}.normalized()
}

func (cfg Config) normalized() Config {
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.MinEntries == 0 {
		cfg.MinEntries = max(1, cfg.MaxEntries*3/10)
	}
	if cfg.ReinsertFraction == 0 && cfg.Split == split.Topological {
		cfg.ReinsertFraction = DefaultReinsertFraction
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	if cfg.MaxEntries < 2 {
		return fmt.Errorf("%w: MaxEntries must be >= 2, is %d", ErrInvalidConfig, cfg.MaxEntries)
	}
	if cfg.MinEntries < 1 || 2*cfg.MinEntries > cfg.MaxEntries {
		return fmt.Errorf("%w: MinEntries must be in [1, %d], is %d",
			ErrInvalidConfig, cfg.MaxEntries/2, cfg.MinEntries)
	}
	if !cfg.Split.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, cfg.Split)
	}
	if math.IsNaN(cfg.ReinsertFraction) || cfg.ReinsertFraction >= 1 {
		return fmt.Errorf("%w: ReinsertFraction must be < 1, is %v", ErrInvalidConfig, cfg.ReinsertFraction)
	}
	if cfg.MaxNodes < 0 {
		return fmt.Errorf("%w: MaxNodes must not be negative", ErrInvalidConfig)
	}
	if cfg.Dims < 0 {
		return fmt.Errorf("%w: Dims must not be negative", ErrInvalidConfig)
	}
	return validateBackendConfig(cfg)
}

// reinsertCount is the number of entries removed from an overflowing node
// (holding MaxEntries+1 entries) for forced reinsertion. The node keeps at
// least MinEntries.
func (cfg Config) reinsertCount() int {
	if cfg.Split != split.Topological || cfg.ReinsertFraction <= 0 {
		return 0
	}
	p := int(cfg.ReinsertFraction * float64(cfg.MaxEntries))
	return min(p, cfg.MaxEntries+1-cfg.MinEntries)
}
